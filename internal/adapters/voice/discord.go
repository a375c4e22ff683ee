package voice

import (
	"context"
	"fmt"

	"alarmbot/internal/adapters/converter"
	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"layeh.com/gopus"
)

type DiscordVoice struct {
	session *discordgo.Session
	decoder port.AudioDecoder
}

// NewDiscord creates the voice adapter. decoder may be nil when no audio backend is installed, playback then
// fails with converter.ErrFFmpegUnavailable.
func NewDiscord(session *discordgo.Session, decoder port.AudioDecoder) *DiscordVoice {
	return &DiscordVoice{session: session, decoder: decoder}
}

func (v *DiscordVoice) UserVoiceChannel(guildID, userID string) (domain.VoiceChannel, bool) {
	if guildID == "" {
		return domain.VoiceChannel{}, false
	}

	vs, err := v.session.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return domain.VoiceChannel{}, false
	}

	channel := domain.VoiceChannel{ID: vs.ChannelID, Name: vs.ChannelID}

	ch, err := v.channel(vs.ChannelID)
	if err != nil {
		log.Warn().Err(err).Str("channelId", vs.ChannelID).Msg("could not resolve voice channel name")
		return channel, true
	}

	channel.Name = ch.Name
	return channel, true
}

func (v *DiscordVoice) Join(_ context.Context, guildID, channelID string) (port.VoiceConnection, error) {
	vc, err := v.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("guildId", guildID).Str("channelId", channelID).Msg("joined voice channel")

	return &connection{vc: vc, decoder: v.decoder}, nil
}

func (v *DiscordVoice) channel(id string) (*discordgo.Channel, error) {
	if ch, err := v.session.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}

	ch, err := v.session.Channel(id)
	if err != nil {
		return nil, err
	}

	_ = v.session.State.ChannelAdd(ch)
	return ch, nil
}

type connection struct {
	vc      *discordgo.VoiceConnection
	decoder port.AudioDecoder
}

func (c *connection) Play(ctx context.Context, path string) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)
		done <- c.play(ctx, path)
	}()

	return done
}

func (c *connection) play(ctx context.Context, path string) error {
	if c.decoder == nil {
		return converter.ErrFFmpegUnavailable
	}

	encoder, err := gopus.NewEncoder(converter.SampleRate, converter.Channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	pcm, cleanup, err := c.decoder.Decode(ctx, path)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.vc.Speaking(true); err != nil {
		return fmt.Errorf("speaking error: %w", err)
	}
	defer func() {
		if err := c.vc.Speaking(false); err != nil {
			log.Debug().Err(err).Msg("failed to reset speaking state")
		}
	}()

	return streamOpus(ctx, pcm, encoder, c.vc.OpusSend)
}

func (c *connection) Disconnect() error {
	return c.vc.Disconnect()
}
