package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/crag-log/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite-backed SessionRepository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.SqlDB}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (username, start_time, gym_name) VALUES (?, ?, ?)`,
		session.Username, session.StartTime, session.GymName,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get session id: %w", err)
	}

	session.ID = id
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	s := &domain.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT session_id, username, start_time, end_time, gym_name, duration
		 FROM sessions WHERE session_id = ?`, id,
	).Scan(&s.ID, &s.Username, &s.StartTime, &s.EndTime, &s.GymName, &s.Duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Close(ctx context.Context, id int64, endTime time.Time, duration int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET end_time = ?, duration = ?
		 WHERE session_id = ? AND end_time IS NULL`,
		endTime, duration, id,
	)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		// Distinguish a missing session from one closed already.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrSessionClosed
	}
	return nil
}

func (r *SessionRepository) ListOverviewsByUser(ctx context.Context, username string) ([]domain.SessionOverview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.session_id, s.gym_name, s.start_time, s.end_time, s.duration,
		 COUNT(c.id),
		 (SELECT c2.grade FROM climbs c2 WHERE c2.session_id = s.session_id
		  GROUP BY c2.grade ORDER BY COUNT(*) DESC, MIN(c2.id) ASC LIMIT 1)
		 FROM sessions s
		 LEFT JOIN climbs c ON c.session_id = s.session_id
		 WHERE s.username = ?
		 GROUP BY s.session_id
		 ORDER BY s.start_time ASC, s.session_id ASC`, username)
	if err != nil {
		return nil, fmt.Errorf("list session overviews: %w", err)
	}
	defer rows.Close()

	var overviews []domain.SessionOverview
	for rows.Next() {
		var o domain.SessionOverview
		var modal sql.NullString
		if err := rows.Scan(&o.SessionID, &o.GymName, &o.StartTime, &o.EndTime,
			&o.Duration, &o.ClimbCount, &modal); err != nil {
			return nil, fmt.Errorf("scan session overview: %w", err)
		}
		if modal.Valid {
			o.ModalGrade = &modal.String
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}
