package port

import (
	"alarmbot/internal/core/domain"
	"context"
)

type Command interface {
	// Respond processes a given message and responds to the originating channel.
	Respond(ctx context.Context, message *domain.Message) error
	// GetCommand retrieves the command verb associated with a specific command handler.
	GetCommand() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its verb or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command verbs currently registered in the command registry.
	ListCommands() []string
}

type Dispatcher interface {
	// Dispatch routes a message to its command handler. Messages that are not commands are ignored.
	Dispatch(ctx context.Context, message *domain.Message) error
}
