package instrument

import (
	"time"
)

type (
	// Alerts is the list of messages shown to the user as popups. Alerts fade
	// in, stay for their Duration and fade out.
	Alerts struct {
		alerts []Alert
	}

	Alert struct {
		Name      string // alerts with the same non-empty name replace each other
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64 // 0 = invisible, 1 = fully visible
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeTime        = 150 * time.Millisecond
)

// Add adds an alert with the default duration.
func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{Priority: priority, Message: message, Duration: defaultAlertDuration})
}

// AddNamed adds an alert that replaces any earlier alert of the same name.
func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (m *Alerts) AddAlert(a Alert) {
	if a.Duration <= 0 {
		a.Duration = defaultAlertDuration
	}
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
}

// Update advances the fades and timers of the alerts by d and removes the
// alerts that have faded out. Returns true if anything is still animating or
// visible, i.e. the view should be redrawn again soon.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	fade := float64(d) / float64(alertFadeTime)
	alive := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > 0 {
			a.Duration -= d
			a.FadeLevel = min(a.FadeLevel+fade, 1)
		} else {
			a.FadeLevel -= fade
		}
		if a.FadeLevel > 0 {
			alive = append(alive, a)
		}
	}
	for i := len(alive); i < len(m.alerts); i++ {
		m.alerts[i] = Alert{}
	}
	m.alerts = alive
	return len(m.alerts) > 0
}

// Iterate yields the alerts from the oldest to the newest.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			return
		}
	}
}

func (m *Alerts) Len() int {
	return len(m.alerts)
}
