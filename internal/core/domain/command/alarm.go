package command

import (
	"context"
	"fmt"
	"strings"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"
	"alarmbot/internal/core/service"

	"github.com/rs/zerolog/log"
)

type Alarm struct {
	scheduler service.Scheduler
	sender    port.EmbedSender
	prefix    string
	command   string
}

func NewAlarm(scheduler service.Scheduler, sender port.EmbedSender, prefix string, command string) *Alarm {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Alarm{
		scheduler: scheduler,
		sender:    sender,
		prefix:    prefix,
		command:   command,
	}
}

func (a *Alarm) GetCommand() string {
	return a.command
}

const (
	missingTimeMessage = "You need to provide a time for the alarm. Usage: `%s%s HH:MM`"
	invalidTimeMessage = "Invalid time format! Please use HH:MM (24-hour format)."
	alarmSetMessage    = "Alarm set for %s IST! I'll remind you."
)

func (a *Alarm) Respond(ctx context.Context, message *domain.Message) error {
	l := log.With().
		Str("messageId", message.ID).
		Str("channelId", message.ChannelID).
		Str("command", a.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	args := strings.Fields(ParseCommandArgs(message.Text))
	if len(args) == 0 {
		return a.sender.NotifyAndReturnError(ctx, message.ChannelID,
			fmt.Sprintf(missingTimeMessage, a.prefix, a.command), domain.ErrMissingAlarmTime)
	}

	hour, minute, err := service.ParseAlarmTime(args[0])
	if err != nil {
		return a.sender.NotifyAndReturnError(ctx, message.ChannelID, invalidTimeMessage, err)
	}

	err = a.sender.SendEmbed(ctx, message.ChannelID, domain.Embed{
		Title:       "Alarm Set",
		Description: fmt.Sprintf(alarmSetMessage, args[0]),
		Color:       domain.Green,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	// the ack must precede anything the alarm itself sends
	alarm, err := a.scheduler.Schedule(domain.Alarm{
		Hour:        hour,
		Minute:      minute,
		UserID:      message.Author.ID,
		UserMention: message.Author.Mention,
		GuildID:     message.GuildID,
		ChannelID:   message.ChannelID,
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to schedule alarm")
		return a.sender.NotifyAndReturnError(ctx, message.ChannelID, "Could not set the alarm.", err)
	}

	l.Debug().Str("alarmId", alarm.ID.String()).Time("target", alarm.Target).Msg("alarm scheduled")

	return nil
}
