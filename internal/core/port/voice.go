package port

import (
	"context"
	"io"
	"time"

	"alarmbot/internal/core/domain"
)

type VoiceLocator interface {
	// UserVoiceChannel reports the voice channel the user currently occupies in a guild.
	UserVoiceChannel(guildID, userID string) (domain.VoiceChannel, bool)
}

type VoiceJoiner interface {
	// Join connects the bot to a voice channel.
	Join(ctx context.Context, guildID, channelID string) (VoiceConnection, error)
}

type Voice interface {
	VoiceLocator
	VoiceJoiner
}

type VoiceConnection interface {
	// Play streams the audio file at path. The returned channel receives the playback result once,
	// either when the file ends or when ctx is cancelled, and is then closed.
	Play(ctx context.Context, path string) <-chan error
	// Disconnect leaves the voice channel.
	Disconnect() error
}

type AudioDecoder interface {
	// Decode opens a raw PCM stream for the audio file at path. The returned cleanup func must be called
	// once the stream is no longer read.
	Decode(ctx context.Context, path string) (io.ReadCloser, func(), error)
}

type LatencyReporter interface {
	// HeartbeatLatency returns the round trip time of the last gateway heartbeat.
	HeartbeatLatency() time.Duration
}
