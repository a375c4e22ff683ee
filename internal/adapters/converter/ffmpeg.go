package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	SampleRate = 48000
	Channels   = 2
)

var ErrFFmpegUnavailable = errors.New("ffmpeg binary not available")

// FFmpegDecoder turns audio files into signed 16-bit little endian PCM at SampleRate with Channels channels.
type FFmpegDecoder struct {
	binary string
}

func NewFFmpegDecoder() (*FFmpegDecoder, error) {
	return newFFmpegDecoder("ffmpeg")
}

func newFFmpegDecoder(binary string) (*FFmpegDecoder, error) {
	_, err := exec.Command(binary, "-version").Output()
	if err != nil {
		log.Debug().Str("binary", binary).Err(err).Msg("binary not found")
		return nil, fmt.Errorf("%w: %w", ErrFFmpegUnavailable, err)
	}

	log.Debug().Str("binary", binary).Msg("binary found")

	return &FFmpegDecoder{binary: binary}, nil
}

func (f *FFmpegDecoder) Decode(ctx context.Context, path string) (io.ReadCloser, func(), error) {
	cmd := exec.CommandContext(ctx, f.binary, f.args(path)...)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("command start error: %w", err)
	}

	log.Debug().Str("path", path).Int("pid", cmd.Process.Pid).Msg("ffmpeg decoding started")

	cleanup := func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}

	return reader, cleanup, nil
}

func (f *FFmpegDecoder) args(path string) []string {
	return []string{
		"-i", path,
		"-f", "s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"-loglevel", "warning",
		"pipe:1",
	}
}
