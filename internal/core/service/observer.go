package service

import (
	"context"
	"fmt"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const (
	welcomeBackMessage = "Welcome back, %s! I removed your AFK status."
	afkAlertMessage    = "%s is currently AFK: %s"
)

// Observer sees every inbound message before command routing and applies AFK side effects.
type Observer struct {
	afk        AfkTracker
	sender     port.EmbedSender
	dispatcher port.Dispatcher
}

func NewObserver(afk AfkTracker, sender port.EmbedSender, dispatcher port.Dispatcher) *Observer {
	return &Observer{afk: afk, sender: sender, dispatcher: dispatcher}
}

func (o *Observer) Observe(ctx context.Context, message *domain.Message) {
	if message.Author.IsBot {
		return
	}

	l := log.With().
		Str("messageId", message.ID).
		Str("channelId", message.ChannelID).
		Str("authorId", message.Author.ID).
		Logger()

	if _, ok := o.afk.ClearAfk(message.Author.ID); ok {
		o.send(ctx, message.ChannelID, domain.Embed{
			Title:       "Welcome Back",
			Description: fmt.Sprintf(welcomeBackMessage, message.Author.Mention),
			Color:       domain.Blue,
		})
	}

	for _, mention := range message.Mentions {
		entry, ok := o.afk.IsAfk(mention.ID)
		if !ok {
			continue
		}

		l.Debug().Str("mentionId", mention.ID).Msg("mentioned user is afk")
		o.send(ctx, message.ChannelID, domain.Embed{
			Title:       "AFK Alert",
			Description: fmt.Sprintf(afkAlertMessage, mention.Mention, entry.Reason),
			Color:       domain.Orange,
		})
	}

	if err := o.dispatcher.Dispatch(ctx, message); err != nil {
		l.Debug().Err(err).Msg("command failed")
	}
}

func (o *Observer) send(ctx context.Context, channelID string, embed domain.Embed) {
	if err := o.sender.SendEmbed(ctx, channelID, embed); err != nil {
		log.Warn().Err(err).Str("channelId", channelID).Str("title", embed.Title).Msg("failed to send afk message")
	}
}
