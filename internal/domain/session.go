package domain

import (
	"context"
	"time"
)

// Session is one timed visit to a gym during which zero or more climbs
// are logged. EndTime and Duration are nil until the session is closed,
// and both set exactly once at close time.
type Session struct {
	ID        int64
	Username  string
	GymName   string
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // whole seconds, EndTime - StartTime at close time
}

// Closed reports whether the session has been ended.
func (s *Session) Closed() bool {
	return s.EndTime != nil && s.Duration != nil
}

// SessionOverview is one session as seen by the analytics read path:
// the session row left-joined against its climbs, so zero-climb
// sessions still appear with ModalGrade absent.
type SessionOverview struct {
	SessionID  int64
	GymName    string
	StartTime  time.Time
	EndTime    *time.Time
	Duration   *int64
	ClimbCount int
	ModalGrade *string
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id int64) (*Session, error)
	// Close writes end_time and duration for an open session. Closing an
	// already-closed session returns ErrSessionClosed and leaves the row
	// untouched.
	Close(ctx context.Context, id int64, endTime time.Time, duration int64) error
	// ListOverviewsByUser returns every session owned by the user with its
	// climb count and modal grade, ordered by start time ascending.
	ListOverviewsByUser(ctx context.Context, username string) ([]SessionOverview, error)
}
