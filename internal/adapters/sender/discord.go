package sender

import (
	"context"
	"fmt"

	"alarmbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
	"github.com/rs/zerolog/log"
)

// DiscordSession is the part of *discordgo.Session used to post messages.
type DiscordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordSender struct {
	session DiscordSession
}

func NewDiscord(session DiscordSession) *DiscordSender {
	return &DiscordSender{session: session}
}

func (s *DiscordSender) SendEmbed(ctx context.Context, channelID string, e domain.Embed) error {
	msg := embed.NewEmbed().
		SetTitle(e.Title).
		SetDescription(e.Description).
		SetColor(int(e.Color))

	_, err := s.session.ChannelMessageSendEmbed(channelID, msg.MessageEmbed, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("channelId", channelID).Msg("failed to send embed")
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func (s *DiscordSender) NotifyAndReturnError(ctx context.Context, channelID string, description string,
	err error) error {
	errorEmbed := domain.Embed{Title: "Error", Description: description, Color: domain.Red}

	if sendErr := s.SendEmbed(ctx, channelID, errorEmbed); sendErr != nil {
		return fmt.Errorf("%w, original error: %w", sendErr, err)
	}

	return err
}
