package command

import (
	"context"
	"fmt"
	"math"
	"time"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Ping struct {
	latency port.LatencyReporter
	sender  port.EmbedSender
	command string
}

func NewPing(latency port.LatencyReporter, sender port.EmbedSender, command string) *Ping {
	return &Ping{latency: latency, sender: sender, command: command}
}

func (p *Ping) GetCommand() string {
	return p.command
}

const pongMessage = "Pong! %dms"

func (p *Ping) Respond(ctx context.Context, message *domain.Message) error {
	l := log.With().
		Str("messageId", message.ID).
		Str("channelId", message.ChannelID).
		Str("command", p.GetCommand()).
		Logger()

	latency := roundMilliseconds(p.latency.HeartbeatLatency())
	l.Info().Int64("latencyMs", latency).Msg("handling request")

	err := p.sender.SendEmbed(ctx, message.ChannelID, domain.Embed{
		Title:       "Pong!",
		Description: fmt.Sprintf(pongMessage, latency),
		Color:       domain.Blue,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// roundMilliseconds rounds to the nearest millisecond, halves to even. No heartbeat yet reads as 0.
func roundMilliseconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}

	return int64(math.RoundToEven(float64(d) / float64(time.Millisecond)))
}
