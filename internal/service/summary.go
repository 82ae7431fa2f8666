package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/crag-log/internal/domain"
)

// SessionLength is a session duration decomposed for display.
type SessionLength struct {
	Minutes int
	Seconds int
}

// SessionSummary is the computed summary of one session. ModalGrade,
// AverageAttempts, and Length are nil when not available (no climbs, or
// session not yet closed).
type SessionSummary struct {
	Session         *domain.Session
	TotalClimbs     int
	ModalGrade      *domain.GradeTally
	AverageAttempts *float64
	Length          *SessionLength
	Climbs          []domain.Climb
}

// SummaryService is the read-only path over one session's climbs.
type SummaryService struct {
	sessions domain.SessionRepository
	climbs   domain.ClimbRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(sessions domain.SessionRepository, climbs domain.ClimbRepository) *SummaryService {
	return &SummaryService{sessions: sessions, climbs: climbs}
}

// TotalClimbs returns the number of climbs logged in a session. A
// session with no climbs yields 0, not an error.
func (s *SummaryService) TotalClimbs(ctx context.Context, sessionID int64) (int, error) {
	return s.climbs.CountBySession(ctx, sessionID)
}

// ModalGrade returns the most frequent grade and its count, or nil when
// the session has no climbs.
func (s *SummaryService) ModalGrade(ctx context.Context, sessionID int64) (*domain.GradeTally, error) {
	tally, err := s.climbs.ModalGrade(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tally, nil
}

// AverageAttempts returns the mean attempt count, or nil when the
// session has no climbs.
func (s *SummaryService) AverageAttempts(ctx context.Context, sessionID int64) (*float64, error) {
	avg, err := s.climbs.AverageAttempts(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &avg, nil
}

// SessionLength returns the elapsed session time decomposed into
// minutes and seconds, or nil when the session is not yet closed.
func (s *SummaryService) SessionLength(ctx context.Context, sessionID int64) (*SessionLength, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return lengthOf(session), nil
}

// ClimbListing returns the session's climbs in insertion order.
func (s *SummaryService) ClimbListing(ctx context.Context, sessionID int64) ([]domain.Climb, error) {
	return s.climbs.ListBySession(ctx, sessionID)
}

// Summarize assembles the full summary for one session.
func (s *SummaryService) Summarize(ctx context.Context, sessionID int64) (*SessionSummary, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	total, err := s.climbs.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count climbs: %w", err)
	}

	modal, err := s.ModalGrade(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("modal grade: %w", err)
	}

	avg, err := s.AverageAttempts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("average attempts: %w", err)
	}

	climbs, err := s.climbs.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list climbs: %w", err)
	}

	return &SessionSummary{
		Session:         session,
		TotalClimbs:     total,
		ModalGrade:      modal,
		AverageAttempts: avg,
		Length:          lengthOf(session),
		Climbs:          climbs,
	}, nil
}

func lengthOf(session *domain.Session) *SessionLength {
	if !session.Closed() {
		return nil
	}
	elapsed := int(session.EndTime.Sub(session.StartTime).Seconds())
	return &SessionLength{Minutes: elapsed / 60, Seconds: elapsed % 60}
}
