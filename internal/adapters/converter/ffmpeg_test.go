package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFFmpegDecoder_MissingBinary(t *testing.T) {
	decoder, err := newFFmpegDecoder("definitely-not-an-ffmpeg-binary")

	require.ErrorIs(t, err, ErrFFmpegUnavailable)
	assert.Nil(t, decoder)
}

func TestFFmpegDecoder_Args(t *testing.T) {
	decoder := &FFmpegDecoder{binary: "ffmpeg"}

	args := decoder.args("alarm.mp3")

	assert.Equal(t, []string{
		"-i", "alarm.mp3",
		"-f", "s16le",
		"-ar", "48000",
		"-ac", "2",
		"-loglevel", "warning",
		"pipe:1",
	}, args)
}
