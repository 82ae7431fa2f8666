package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/msomdec/crag-log/internal/domain"
)

// SessionStat is one historical session as presented by the analytics
// read path. Minutes is nil for sessions that were never closed;
// ModalGrade is nil for sessions with no climbs.
type SessionStat struct {
	SessionID  int64
	Label      string // gym name + start date
	GymName    string
	StartTime  time.Time
	ClimbCount int
	ModalGrade *string
	Minutes    *int
}

// WeekPoint is one point of the weekly time series: all sessions whose
// start time falls in one ISO week, with their summed length in minutes.
type WeekPoint struct {
	Year         int
	Week         int
	Label        string // e.g. "2026-W35"
	TotalMinutes int
	Sessions     []SessionStat
}

// AnalyticsService is the read-only path over all of a user's sessions.
type AnalyticsService struct {
	sessions domain.SessionRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(sessions domain.SessionRepository) *AnalyticsService {
	return &AnalyticsService{sessions: sessions}
}

// SessionStats returns per-session metadata for every session the user
// owns, in start-time order. Sessions with zero climbs still appear.
func (s *AnalyticsService) SessionStats(ctx context.Context, username string) ([]SessionStat, error) {
	overviews, err := s.sessions.ListOverviewsByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	stats := make([]SessionStat, len(overviews))
	for i, o := range overviews {
		stats[i] = toStat(o)
	}
	return stats, nil
}

// WeeklySeries groups the user's sessions by the ISO week of their
// start time and sums per-session lengths in minutes, ordered by week
// ascending. Sessions that were never closed appear in their week's
// metadata but contribute no minutes.
func (s *AnalyticsService) WeeklySeries(ctx context.Context, username string) ([]WeekPoint, error) {
	overviews, err := s.sessions.ListOverviewsByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	type weekKey struct {
		year int
		week int
	}
	buckets := make(map[weekKey]*WeekPoint)
	for _, o := range overviews {
		year, week := o.StartTime.ISOWeek()
		key := weekKey{year, week}
		point, ok := buckets[key]
		if !ok {
			point = &WeekPoint{
				Year:  year,
				Week:  week,
				Label: fmt.Sprintf("%d-W%02d", year, week),
			}
			buckets[key] = point
		}

		stat := toStat(o)
		if stat.Minutes != nil {
			point.TotalMinutes += *stat.Minutes
		}
		point.Sessions = append(point.Sessions, stat)
	}

	series := make([]WeekPoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Week < series[j].Week
	})
	return series, nil
}

func toStat(o domain.SessionOverview) SessionStat {
	stat := SessionStat{
		SessionID:  o.SessionID,
		Label:      fmt.Sprintf("%s %s", o.GymName, o.StartTime.Format("2006-01-02")),
		GymName:    o.GymName,
		StartTime:  o.StartTime,
		ClimbCount: o.ClimbCount,
		ModalGrade: o.ModalGrade,
	}
	if o.EndTime != nil {
		minutes := int(o.EndTime.Sub(o.StartTime).Minutes())
		stat.Minutes = &minutes
	}
	return stat
}
