package voice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEncoder struct {
	frames int
	err    error
}

func (f *fakeEncoder) Encode(pcm []int16, size, _ int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.frames++
	return []byte{byte(len(pcm) / size)}, nil
}

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

const frameBytes = frameSize * 2 * 2

func TestStreamOpus(t *testing.T) {
	tests := []struct {
		name       string
		pcm        io.Reader
		encoderErr error
		wantFrames int
		wantErr    bool
	}{
		{
			name:       "two full frames",
			pcm:        bytes.NewReader(make([]byte, 2*frameBytes)),
			wantFrames: 2,
		},
		{
			name:       "trailing partial frame is dropped",
			pcm:        bytes.NewReader(make([]byte, frameBytes+10)),
			wantFrames: 1,
		},
		{
			name:       "empty stream",
			pcm:        bytes.NewReader(nil),
			wantFrames: 0,
		},
		{
			name:    "read error",
			pcm:     failingReader{},
			wantErr: true,
		},
		{
			name:       "encode error",
			pcm:        bytes.NewReader(make([]byte, frameBytes)),
			encoderErr: errors.New("bad frame"),
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc := &fakeEncoder{err: tc.encoderErr}
			out := make(chan []byte, 10)

			err := streamOpus(t.Context(), tc.pcm, enc, out)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, out, tc.wantFrames)
		})
	}
}

func TestStreamOpus_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	enc := &fakeEncoder{}
	out := make(chan []byte)

	done := make(chan error, 1)
	go func() {
		done <- streamOpus(ctx, bytes.NewReader(make([]byte, 10*frameBytes)), enc, out)
	}()

	<-out
	cancel()

	require.NoError(t, <-done)
	assert.Less(t, enc.frames, 10)
}
