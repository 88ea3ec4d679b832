package models

import (
	"medtour-service/internal/pkg/constvars"
	"time"
)

const (
	JoinStateTooEarly = "too-early"
	JoinStateOpen     = "open"
	JoinStateEnded    = "ended"
)

// JoinWindow is the interval [scheduled-15m, scheduled+duration] during which
// participants may fetch the call room. Both bounds are inclusive.
type JoinWindow struct {
	State    string
	OpensAt  time.Time
	ClosesAt time.Time
}

func EvaluateJoinWindow(now, scheduledDate time.Time, duration time.Duration) JoinWindow {
	window := JoinWindow{
		OpensAt:  scheduledDate.Add(-constvars.AppointmentJoinLeadTime),
		ClosesAt: scheduledDate.Add(duration),
	}

	switch {
	case now.Before(window.OpensAt):
		window.State = JoinStateTooEarly
	case now.After(window.ClosesAt):
		window.State = JoinStateEnded
	default:
		window.State = JoinStateOpen
	}
	return window
}

func (w JoinWindow) IsOpen() bool {
	return w.State == JoinStateOpen
}

func (w JoinWindow) HasEnded() bool {
	return w.State == JoinStateEnded
}
