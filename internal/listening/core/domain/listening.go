package domain

import (
	"errors"
	"time"
)

// ErrUnknownExcursionPoint is returned by the store when the referenced
// excursion point (or user) does not exist.
var ErrUnknownExcursionPoint = errors.New("unknown excursion point")

// Listening is one playback of an excursion point's track by a user.
type Listening struct {
	UserID           int64
	ExcursionPointID int64
	ListenedAt       time.Time
	DedupeKey        string
}
