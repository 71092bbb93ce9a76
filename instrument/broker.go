package instrument

import (
	"time"
)

type (
	// Broker is the centralized message broker of the instrument. It is used
	// to communicate between the control goroutine (the GUI event loop, which
	// owns the Model) and the audio goroutine (which owns the Player). The
	// broker is just many-to-one communication, implemented with one channel
	// for each recipient.
	//
	// For closing the GUI, the broker has two channels: CloseGUI and
	// FinishedGUI. CloseGUI has a capacity of 1, so you can always send an
	// empty message (struct{}{}) to it without blocking. If the channel is
	// already full, someone else has already requested the closure, so
	// dropping the message is fine. FinishedGUI is never sent to, only closed,
	// once the GUI has shut down. You can wait for it with a timeout:
	//    select {
	//      case <-FinishedGUI:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToModel  chan MsgToModel
		ToPlayer chan any

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}

	// MsgToModel is a message sent to the model. The levels sent after every
	// rendered buffer are not boxed to avoid allocations; everything else is
	// passed in Data.
	MsgToModel struct {
		HasLevels bool
		Voices    int     // number of voices producing sound, including fading ones
		Peak      float32 // peak absolute sample value of the last buffer

		Data any
	}

	// NoteOnMsg asks the player to start a new voice. IDs are unique per
	// note-on.
	NoteOnMsg struct {
		ID        int
		Frequency float64
	}

	// NoteOffMsg asks the player to release the voice with the given ID,
	// fading it out over Release.
	NoteOffMsg struct {
		ID      int
		Release time.Duration
	}

	// PanicMsg asks the player to silence all voices at once.
	PanicMsg struct{}
)

func NewBroker() *Broker {
	return &Broker{
		ToPlayer:    make(chan any, 1024),
		ToModel:     make(chan MsgToModel, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutSend blocks until the value is sent to the channel, or gives up after
// t. Returns true if the value was sent.
func TimeoutSend[T any](c chan<- T, v T, t time.Duration) bool {
	if TrySend(c, v) {
		return true
	}
	timer := time.NewTimer(t)
	defer timer.Stop()
	select {
	case c <- v:
		return true
	case <-timer.C:
		return false
	}
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
