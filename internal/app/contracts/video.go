package contracts

import (
	"context"
	"time"
)

type VideoRoom struct {
	URL  string
	Name string
}

// VideoRoomProvider creates and removes consultation rooms on the video delegate.
type VideoRoomProvider interface {
	CreateRoom(ctx context.Context, appointmentID string, scheduledDate time.Time, duration time.Duration) (*VideoRoom, error)
	DeleteRoom(ctx context.Context, roomName string) error
}
