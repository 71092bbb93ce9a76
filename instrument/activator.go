package instrument

import (
	"fmt"
	"log"
)

type (
	// Resumer is the part of the audio context needed to get it running.
	Resumer interface {
		Resume() error
		Suspended() bool
	}

	// Activator resumes a suspended audio context on the first user gesture.
	// Once the context has been found running, the activator never touches it
	// again. If resuming fails, the failure is reported and the next gesture
	// tries again.
	Activator struct {
		audio  Resumer
		alerts *Alerts
		done   bool
	}
)

func NewActivator(audio Resumer, alerts *Alerts) *Activator {
	return &Activator{audio: audio, alerts: alerts}
}

// Activate makes sure the audio context is running. It returns true if the
// context is running after the call.
func (a *Activator) Activate() bool {
	if a.done {
		return true
	}
	if a.audio == nil || !a.audio.Suspended() {
		a.done = true
		return true
	}
	if err := a.audio.Resume(); err != nil {
		msg := fmt.Sprintf("failed to resume audio: %v", err)
		log.Print(msg)
		if a.alerts != nil {
			a.alerts.AddNamed("AudioResume", msg, Warning)
		}
		return false
	}
	log.Print("audio resumed")
	a.done = true
	return true
}

// Done reports whether the handshake has completed.
func (a *Activator) Done() bool {
	return a.done
}
