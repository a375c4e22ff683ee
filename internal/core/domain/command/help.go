package command

import (
	"context"
	"fmt"
	"strings"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"
)

type Help struct {
	sender  port.EmbedSender
	text    string
	command string
}

func NewHelp(sender port.EmbedSender, prefix string, command string) *Help {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	sb := &strings.Builder{}

	for _, line := range helpLines {
		_, _ = fmt.Fprintf(sb, "**%s%s** - %s\n", prefix, line.usage, line.description)
	}

	return &Help{sender: sender, text: sb.String(), command: command}
}

var helpLines = []struct {
	usage       string
	description string
}{
	{"alarm [time]", "Set an alarm at the given time (24-hour format HH:MM). The bot will either join your " +
		"voice channel and play a sound or tag you if not in a voice channel."},
	{"afk [reason]", "Set your status to AFK with an optional reason."},
	{"ping", "Checks the bot's latency."},
	{"help", "Displays this help message with information about the bot's commands."},
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, message *domain.Message) error {
	err := h.sender.SendEmbed(ctx, message.ChannelID, domain.Embed{
		Title:       "Help - Available Commands",
		Description: h.text,
		Color:       domain.Blue,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
