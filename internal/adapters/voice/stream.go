package voice

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"alarmbot/internal/adapters/converter"
)

// 20ms at 48kHz
const frameSize = 960

type opusEncoder interface {
	Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error)
}

// streamOpus encodes PCM frames from pcm and pushes them to out until the stream ends or ctx is done. Both
// count as a normal end of playback.
func streamOpus(ctx context.Context, pcm io.Reader, encoder opusEncoder, out chan<- []byte) error {
	pcmBuf := make([]byte, frameSize*converter.Channels*2)
	intBuf := make([]int16, frameSize*converter.Channels)

	for {
		_, err := io.ReadFull(pcm, pcmBuf)
		if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		frame, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case out <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}
