package domain

import (
	"context"
	"time"
)

// GradeJudgment is the user's opinion on whether the assigned grade felt
// easy (Soft), accurate (On), or hard (Hard) relative to convention.
type GradeJudgment string

const (
	JudgmentSoft GradeJudgment = "Soft"
	JudgmentOn   GradeJudgment = "On"
	JudgmentHard GradeJudgment = "Hard"
)

// ClimbType distinguishes roped climbs from boulder problems. It is a
// pure function of the grade label and never stored inconsistently
// with it.
type ClimbType string

const (
	ClimbTypeSport   ClimbType = "Sport"
	ClimbTypeBoulder ClimbType = "Boulder"
)

const (
	MinAttempts   = 1
	MaxAttempts   = 100
	MaxStarRating = 5
)

// Climb is one logged attempt/send record within a session.
type Climb struct {
	ID            int64
	SessionID     int64
	Photo         []byte // optional uploaded image, stored opaquely
	ClimbDate     time.Time
	ClimbName     string
	GymName       string
	Grade         string
	GradeJudgment GradeJudgment
	NumAttempts   int
	Sent          bool
	Notes         string
	StarRating    *int // optional 0-5 quality rating
	Type          ClimbType
}

// GradeTally is a grade together with its occurrence count.
type GradeTally struct {
	Grade string
	Count int
}

// ClimbRepository defines persistence and aggregate operations for climbs.
// Climbs are insert-only in the normal workflow.
type ClimbRepository interface {
	Create(ctx context.Context, climb *Climb) error
	GetByID(ctx context.Context, id int64) (*Climb, error)
	// ListBySession returns all climbs for a session in insertion order.
	// Photo bytes are omitted; fetch them with GetByID.
	ListBySession(ctx context.Context, sessionID int64) ([]Climb, error)
	CountBySession(ctx context.Context, sessionID int64) (int, error)
	// ModalGrade returns the most frequent grade for a session, ties broken
	// by earliest insert. Returns ErrNotFound for a session with no climbs.
	ModalGrade(ctx context.Context, sessionID int64) (*GradeTally, error)
	// AverageAttempts returns the mean attempt count for a session.
	// Returns ErrNotFound for a session with no climbs.
	AverageAttempts(ctx context.Context, sessionID int64) (float64, error)
	// GetOwner returns the username owning the session the climb belongs
	// to. Used for photo-serving ownership checks.
	GetOwner(ctx context.Context, climbID int64) (string, error)
}
