package pianola

type (
	// AudioBuffer is a buffer of stereo frames, left channel first.
	AudioBuffer [][2]float32

	// AudioSource fills the given buffer completely with the next frames of
	// audio.
	AudioSource func(buf AudioBuffer) error

	// AudioContext is the platform audio service. Play starts pulling audio
	// from the source until the returned CloserWaiter is closed. A context may
	// be created suspended: it then produces no sound and pulls no audio
	// until Resume succeeds.
	AudioContext interface {
		Play(source AudioSource) CloserWaiter
		Resume() error
		Suspended() bool
	}

	CloserWaiter interface {
		Close() error
		Wait()
	}
)

// Clear sets all frames of the buffer to silence.
func (b AudioBuffer) Clear() {
	for i := range b {
		b[i] = [2]float32{}
	}
}

// Fill fills the left and right channels with the same mono signal. The
// buffer and the signal should have the same length; extra frames are left
// untouched.
func (b AudioBuffer) Fill(mono []float32) {
	n := min(len(b), len(mono))
	for i := 0; i < n; i++ {
		b[i] = [2]float32{mono[i], mono[i]}
	}
}
