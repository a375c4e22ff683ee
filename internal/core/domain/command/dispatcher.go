package command

import (
	"context"
	"strings"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const DefaultPrefix = ">>"

// Dispatcher routes prefixed messages to the registered command handlers. Anything else, including unknown
// commands, is dropped without a reply.
type Dispatcher struct {
	registry port.CommandRegistry
	prefix   string
}

func NewDispatcher(registry port.CommandRegistry, prefix string) *Dispatcher {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Dispatcher{registry: registry, prefix: prefix}
}

func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message) error {
	if !strings.HasPrefix(message.Text, d.prefix) {
		return nil
	}

	cmd := ParseCommand(strings.TrimPrefix(message.Text, d.prefix))
	handler, err := d.registry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return nil
	}

	log.Debug().Str("message", message.Text).Msg("received command")

	return handler.Respond(ctx, message)
}
