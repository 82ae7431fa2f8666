package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/crag-log/internal/domain"
)

// WorkflowState identifies where a user is in the session-entry flow.
type WorkflowState string

const (
	StateChooseGym   WorkflowState = "choose_gym"
	StateEnterClimbs WorkflowState = "enter_climbs"
	StateSummary     WorkflowState = "summary"
)

// DraftClimb holds the in-progress climb form values for one workflow
// instance. Defaults are applied when a session starts and restored
// after each successful submission.
type DraftClimb struct {
	ClimbName     string
	Grade         string
	GradeJudgment domain.GradeJudgment
	NumAttempts   int
	Notes         string
	Sent          bool
	StarRating    int
}

// WorkflowContext is the retained state of one user's session-entry
// workflow: the current state, the created session, and the draft form.
type WorkflowContext struct {
	State     WorkflowState
	SessionID int64
	GymName   string
	StartTime time.Time
	Draft     DraftClimb
}

// ClimbInput carries one submitted climb form.
type ClimbInput struct {
	ClimbName     string
	Grade         string
	GradeJudgment string
	NumAttempts   int
	Notes         string
	Sent          bool
	StarRating    int
	Photo         []byte
}

// WorkflowService drives the choose-gym → enter-climbs → summary state
// machine. It is the only writer to the session and climb stores. Each
// user has at most one workflow instance, held in memory and keyed by
// username.
type WorkflowService struct {
	mu       sync.Mutex
	contexts map[string]*WorkflowContext

	sessions domain.SessionRepository
	climbs   domain.ClimbRepository
	taxonomy *Taxonomy
	now      func() time.Time
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(sessions domain.SessionRepository, climbs domain.ClimbRepository, taxonomy *Taxonomy) *WorkflowService {
	return &WorkflowService{
		contexts: make(map[string]*WorkflowContext),
		sessions: sessions,
		climbs:   climbs,
		taxonomy: taxonomy,
		now:      time.Now,
	}
}

// Context returns a snapshot of the user's workflow context. Users with
// no in-progress workflow are in the initial choose-gym state.
func (s *WorkflowService) Context(username string) WorkflowContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wf, ok := s.contexts[username]; ok {
		return *wf
	}
	return WorkflowContext{State: StateChooseGym}
}

// Start transitions choose_gym → enter_climbs: it creates exactly one
// session row for this workflow instance and retains its id. Invoking
// Start again while climbs are being entered is a no-op (no duplicate
// session). Starting from the summary state is rejected; the workflow
// must be reset first.
func (s *WorkflowService) Start(ctx context.Context, username, gymName string) (WorkflowContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wf, ok := s.contexts[username]; ok {
		switch wf.State {
		case StateEnterClimbs:
			return *wf, nil // re-entry, session already created
		case StateSummary:
			return *wf, domain.ErrSessionClosed
		}
	}

	grades, err := s.taxonomy.GradesFor(gymName)
	if err != nil {
		return WorkflowContext{State: StateChooseGym}, err
	}

	session := &domain.Session{
		Username:  username,
		GymName:   gymName,
		StartTime: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return WorkflowContext{State: StateChooseGym}, fmt.Errorf("create session: %w", err)
	}

	wf := &WorkflowContext{
		State:     StateEnterClimbs,
		SessionID: session.ID,
		GymName:   gymName,
		StartTime: session.StartTime,
		Draft:     defaultDraft(grades),
	}
	s.contexts[username] = wf
	return *wf, nil
}

// SubmitClimb is the enter_climbs self-loop: it validates and inserts
// one climb row. A grade outside the gym's set is coerced to the set's
// first member, attempts and stars are clamped into range, and an empty
// climb name is replaced with a generated unique placeholder. On
// success the draft resets to defaults; on a storage failure the draft
// keeps the submitted values so the user can retry.
func (s *WorkflowService) SubmitClimb(ctx context.Context, username string, in ClimbInput) (*domain.Climb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.contexts[username]
	if !ok || wf.State != StateEnterClimbs {
		return nil, domain.ErrNoActiveSession
	}

	grades, err := s.taxonomy.GradesFor(wf.GymName)
	if err != nil {
		return nil, err
	}

	grade := in.Grade
	if !s.taxonomy.HasGrade(wf.GymName, grade) {
		grade = grades[0]
	}

	judgment := domain.GradeJudgment(in.GradeJudgment)
	switch judgment {
	case domain.JudgmentSoft, domain.JudgmentOn, domain.JudgmentHard:
	default:
		judgment = domain.JudgmentOn
	}

	attempts := clamp(in.NumAttempts, domain.MinAttempts, domain.MaxAttempts)
	stars := clamp(in.StarRating, 0, domain.MaxStarRating)

	name := in.ClimbName
	if name == "" {
		name = uuid.NewString()
	}

	start := wf.StartTime
	climb := &domain.Climb{
		SessionID:     wf.SessionID,
		Photo:         in.Photo,
		ClimbDate:     time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		ClimbName:     name,
		GymName:       wf.GymName,
		Grade:         grade,
		GradeJudgment: judgment,
		NumAttempts:   attempts,
		Sent:          in.Sent,
		Notes:         in.Notes,
		StarRating:    &stars,
		Type:          ClimbTypeFor(grade),
	}

	if err := s.climbs.Create(ctx, climb); err != nil {
		// Preserve the form so the user can resubmit.
		wf.Draft = DraftClimb{
			ClimbName:     in.ClimbName,
			Grade:         grade,
			GradeJudgment: judgment,
			NumAttempts:   attempts,
			Notes:         in.Notes,
			Sent:          in.Sent,
			StarRating:    stars,
		}
		return nil, fmt.Errorf("create climb: %w", err)
	}

	wf.Draft = defaultDraft(grades)
	return climb, nil
}

// EndSession transitions enter_climbs → summary: it computes the
// elapsed duration, writes end_time and duration exactly once, and
// moves the workflow to the summary state. One-way.
func (s *WorkflowService) EndSession(ctx context.Context, username string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.contexts[username]
	if !ok || wf.State != StateEnterClimbs {
		return nil, domain.ErrNoActiveSession
	}

	end := s.now().UTC()
	duration := int64(end.Sub(wf.StartTime).Seconds())
	if err := s.sessions.Close(ctx, wf.SessionID, end, duration); err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}
	wf.State = StateSummary

	session, err := s.sessions.GetByID(ctx, wf.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get closed session: %w", err)
	}
	return session, nil
}

// Reset transitions summary → choose_gym: the retained session id and
// all held form values are cleared for a fresh session. Resetting an
// instance in any state is allowed; an open session stays open.
func (s *WorkflowService) Reset(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, username)
}

func defaultDraft(grades []string) DraftClimb {
	return DraftClimb{
		Grade:         grades[0],
		GradeJudgment: domain.JudgmentOn,
		NumAttempts:   domain.MinAttempts,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
