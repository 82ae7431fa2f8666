package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/crag-log/internal/domain"
)

// ClimbRepository implements domain.ClimbRepository using SQLite.
type ClimbRepository struct {
	db *sql.DB
}

// NewClimbRepository creates a new SQLite-backed ClimbRepository.
func NewClimbRepository(db *DB) *ClimbRepository {
	return &ClimbRepository{db: db.SqlDB}
}

func (r *ClimbRepository) Create(ctx context.Context, climb *domain.Climb) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO climbs (session_id, photo, climb_date, climb_name, gym_name,
		 grade, grade_judgment, num_attempts, sent, notes, star_rating, type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		climb.SessionID, climb.Photo, climb.ClimbDate, climb.ClimbName, climb.GymName,
		climb.Grade, climb.GradeJudgment, climb.NumAttempts, climb.Sent,
		climb.Notes, climb.StarRating, climb.Type,
	)
	if err != nil {
		return fmt.Errorf("insert climb: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get climb id: %w", err)
	}

	climb.ID = id
	return nil
}

func (r *ClimbRepository) GetByID(ctx context.Context, id int64) (*domain.Climb, error) {
	c := &domain.Climb{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, photo, climb_date, climb_name, gym_name,
		 grade, grade_judgment, num_attempts, sent, notes, star_rating, type
		 FROM climbs WHERE id = ?`, id,
	).Scan(&c.ID, &c.SessionID, &c.Photo, &c.ClimbDate, &c.ClimbName, &c.GymName,
		&c.Grade, &c.GradeJudgment, &c.NumAttempts, &c.Sent, &c.Notes, &c.StarRating, &c.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query climb: %w", err)
	}
	return c, nil
}

func (r *ClimbRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Climb, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, climb_date, climb_name, gym_name,
		 grade, grade_judgment, num_attempts, sent, notes, star_rating, type
		 FROM climbs WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list climbs: %w", err)
	}
	defer rows.Close()

	var climbs []domain.Climb
	for rows.Next() {
		var c domain.Climb
		if err := rows.Scan(&c.ID, &c.SessionID, &c.ClimbDate, &c.ClimbName, &c.GymName,
			&c.Grade, &c.GradeJudgment, &c.NumAttempts, &c.Sent, &c.Notes,
			&c.StarRating, &c.Type); err != nil {
			return nil, fmt.Errorf("scan climb: %w", err)
		}
		climbs = append(climbs, c)
	}
	return climbs, rows.Err()
}

func (r *ClimbRepository) CountBySession(ctx context.Context, sessionID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM climbs WHERE session_id = ?", sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count climbs: %w", err)
	}
	return count, nil
}

func (r *ClimbRepository) ModalGrade(ctx context.Context, sessionID int64) (*domain.GradeTally, error) {
	tally := &domain.GradeTally{}
	err := r.db.QueryRowContext(ctx,
		`SELECT grade, COUNT(*) AS n FROM climbs WHERE session_id = ?
		 GROUP BY grade ORDER BY n DESC, MIN(id) ASC LIMIT 1`, sessionID,
	).Scan(&tally.Grade, &tally.Count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query modal grade: %w", err)
	}
	return tally, nil
}

func (r *ClimbRepository) AverageAttempts(ctx context.Context, sessionID int64) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		"SELECT AVG(num_attempts) FROM climbs WHERE session_id = ?", sessionID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("query average attempts: %w", err)
	}
	if !avg.Valid {
		return 0, domain.ErrNotFound
	}
	return avg.Float64, nil
}

func (r *ClimbRepository) GetOwner(ctx context.Context, climbID int64) (string, error) {
	var username string
	err := r.db.QueryRowContext(ctx,
		`SELECT s.username FROM climbs c
		 JOIN sessions s ON s.session_id = c.session_id
		 WHERE c.id = ?`, climbID,
	).Scan(&username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("query climb owner: %w", err)
	}
	return username, nil
}
