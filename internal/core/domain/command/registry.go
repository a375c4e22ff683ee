package command

import (
	"errors"
	"strings"
	"unicode"

	"alarmbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	return keys
}

// ParseCommandArgs returns everything after the first word of a command message. Words may be separated by any
// whitespace, including newlines.
func ParseCommandArgs(args string) string {
	_, rest := splitCommand(args)
	return rest
}

func ParseCommand(args string) string {
	command, _ := splitCommand(args)
	return strings.ToLower(command)
}

// splitCommand cuts at the first whitespace run. Leading whitespace yields an empty verb.
func splitCommand(args string) (string, string) {
	i := strings.IndexFunc(args, unicode.IsSpace)
	if i < 0 {
		return args, ""
	}

	return args[:i], strings.TrimLeftFunc(args[i:], unicode.IsSpace)
}
