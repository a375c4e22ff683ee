package command

import (
	"context"
	"fmt"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"
	"alarmbot/internal/core/service"
)

type Afk struct {
	tracker service.AfkTracker
	sender  port.EmbedSender
	command string
}

func NewAfk(tracker service.AfkTracker, sender port.EmbedSender, command string) *Afk {
	return &Afk{
		tracker: tracker,
		sender:  sender,
		command: command,
	}
}

func (a *Afk) GetCommand() string {
	return a.command
}

const afkSetMessage = "%s is now AFK: %s"

func (a *Afk) Respond(ctx context.Context, message *domain.Message) error {
	entry := a.tracker.SetAfk(message.Author.ID, ParseCommandArgs(message.Text))

	err := a.sender.SendEmbed(ctx, message.ChannelID, domain.Embed{
		Title:       "AFK Set",
		Description: fmt.Sprintf(afkSetMessage, message.Author.Mention, entry.Reason),
		Color:       domain.Green,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
