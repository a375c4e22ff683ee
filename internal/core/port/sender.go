package port

import (
	"alarmbot/internal/core/domain"
	"context"
)

type EmbedSender interface {
	// SendEmbed posts a rich message with title, description and color to the given channel.
	SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error
	// NotifyAndReturnError sends an error embed with the given description to the channel and returns err.
	NotifyAndReturnError(ctx context.Context, channelID string, description string, err error) error
}
