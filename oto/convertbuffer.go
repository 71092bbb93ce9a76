package oto

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/pianola/pianola"
)

const bytesPerFrame = 2 * 4 // two float32 channels

// SourceReader adapts an AudioSource to the io.Reader that oto pulls from. If
// the source fails, the reader keeps producing silence; the first error is
// kept for Err.
type SourceReader struct {
	source pianola.AudioSource
	buffer pianola.AudioBuffer

	mu  sync.Mutex
	err error
}

func NewSourceReader(source pianola.AudioSource) *SourceReader {
	return &SourceReader{source: source}
}

// Read fills p with whole frames of 32-bit float little-endian stereo audio.
// Trailing bytes that do not make a whole frame are left unused.
func (r *SourceReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if cap(r.buffer) < frames {
		r.buffer = make(pianola.AudioBuffer, frames)
	}
	buf := r.buffer[:frames]
	if r.Err() != nil {
		buf.Clear()
	} else if err := r.source(buf); err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		buf.Clear()
	}
	out := AudioBufferToFloat32LE(buf, p[:0])
	return len(out), nil
}

func (r *SourceReader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// AudioBufferToFloat32LE appends the frames of the buffer to dst as
// interleaved 32-bit float little-endian samples, clamped to [-1, 1]. NaNs
// become silence.
func AudioBufferToFloat32LE(buffer pianola.AudioBuffer, dst []byte) []byte {
	for _, frame := range buffer {
		for _, v := range frame {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(clamp(v)))
		}
	}
	return dst
}

func clamp(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
