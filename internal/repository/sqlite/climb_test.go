package sqlite_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/repository/sqlite"
)

// seedClimb inserts a minimal climb with the given grade and attempts.
func seedClimb(t *testing.T, db *sqlite.DB, sessionID int64, grade string, attempts int) *domain.Climb {
	t.Helper()
	stars := 3
	climb := &domain.Climb{
		SessionID:     sessionID,
		ClimbDate:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		ClimbName:     "climb-" + grade,
		GymName:       "MBP",
		Grade:         grade,
		GradeJudgment: domain.JudgmentOn,
		NumAttempts:   attempts,
		Sent:          true,
		StarRating:    &stars,
		Type:          domain.ClimbTypeBoulder,
	}
	if err := sqlite.NewClimbRepository(db).Create(context.Background(), climb); err != nil {
		t.Fatalf("seed climb: %v", err)
	}
	return climb
}

func newSessionForClimbs(t *testing.T, db *sqlite.DB) int64 {
	t.Helper()
	seedUser(t, db, "climber")
	session := seedSession(t, db, "climber", "MBP",
		time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	return session.ID
}

func TestClimbRepository_Create(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)

	climb := seedClimb(t, db, sessionID, "Purple", 2)
	if climb.ID == 0 {
		t.Fatal("expected climb ID to be set after create")
	}
}

func TestClimbRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	created := seedClimb(t, db, sessionID, "Red", 4)

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Grade != "Red" {
		t.Fatalf("expected grade Red, got %s", got.Grade)
	}
	if got.NumAttempts != 4 {
		t.Fatalf("expected 4 attempts, got %d", got.NumAttempts)
	}
	if got.GradeJudgment != domain.JudgmentOn {
		t.Fatalf("expected judgment On, got %s", got.GradeJudgment)
	}
	if got.StarRating == nil || *got.StarRating != 3 {
		t.Fatalf("expected 3 stars, got %v", got.StarRating)
	}
	if !got.Sent {
		t.Fatal("expected sent to round-trip as true")
	}
}

func TestClimbRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewClimbRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClimbRepository_PhotoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
	climb := &domain.Climb{
		SessionID:     sessionID,
		Photo:         photo,
		ClimbDate:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		ClimbName:     "with-photo",
		GymName:       "MBP",
		Grade:         "Purple",
		GradeJudgment: domain.JudgmentHard,
		NumAttempts:   1,
		Type:          domain.ClimbTypeBoulder,
	}
	if err := repo.Create(ctx, climb); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, climb.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !bytes.Equal(got.Photo, photo) {
		t.Fatalf("photo bytes did not round-trip: got %v", got.Photo)
	}
	if got.StarRating != nil {
		t.Fatalf("expected nil star rating, got %v", got.StarRating)
	}
}

func TestClimbRepository_ListBySession_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	seedClimb(t, db, sessionID, "Yellow", 1)
	seedClimb(t, db, sessionID, "Red", 2)
	seedClimb(t, db, sessionID, "Green", 3)

	climbs, err := repo.ListBySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(climbs) != 3 {
		t.Fatalf("expected 3 climbs, got %d", len(climbs))
	}

	grades := []string{climbs[0].Grade, climbs[1].Grade, climbs[2].Grade}
	want := []string{"Yellow", "Red", "Green"}
	for i := range want {
		if grades[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], grades[i])
		}
	}
}

func TestClimbRepository_CountBySession(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	count, err := repo.CountBySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountBySession: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 climbs, got %d", count)
	}

	seedClimb(t, db, sessionID, "Purple", 1)
	seedClimb(t, db, sessionID, "Purple", 1)

	count, err = repo.CountBySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("CountBySession: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 climbs, got %d", count)
	}
}

func TestClimbRepository_ModalGrade(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	seedClimb(t, db, sessionID, "5.9", 1)
	seedClimb(t, db, sessionID, "5.9", 2)
	seedClimb(t, db, sessionID, "5.10-", 1)

	tally, err := repo.ModalGrade(ctx, sessionID)
	if err != nil {
		t.Fatalf("ModalGrade: %v", err)
	}
	if tally.Grade != "5.9" {
		t.Fatalf("expected modal grade 5.9, got %s", tally.Grade)
	}
	if tally.Count != 2 {
		t.Fatalf("expected count 2, got %d", tally.Count)
	}
}

func TestClimbRepository_ModalGrade_TieBreaksOnFirstLogged(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	seedClimb(t, db, sessionID, "Red", 1)
	seedClimb(t, db, sessionID, "Yellow", 1)

	tally, err := repo.ModalGrade(ctx, sessionID)
	if err != nil {
		t.Fatalf("ModalGrade: %v", err)
	}
	if tally.Grade != "Red" {
		t.Fatalf("tie should resolve to first-logged grade Red, got %s", tally.Grade)
	}
}

func TestClimbRepository_ModalGrade_NoClimbs(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)

	_, err := repo.ModalGrade(context.Background(), sessionID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClimbRepository_AverageAttempts(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	seedClimb(t, db, sessionID, "Purple", 3)
	seedClimb(t, db, sessionID, "Purple", 1)
	seedClimb(t, db, sessionID, "Red", 5)

	avg, err := repo.AverageAttempts(ctx, sessionID)
	if err != nil {
		t.Fatalf("AverageAttempts: %v", err)
	}
	if avg != 3.0 {
		t.Fatalf("expected average 3.0, got %f", avg)
	}
}

func TestClimbRepository_AverageAttempts_NoClimbs(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)

	_, err := repo.AverageAttempts(context.Background(), sessionID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClimbRepository_GetOwner(t *testing.T) {
	db := newTestDB(t)
	sessionID := newSessionForClimbs(t, db)
	repo := sqlite.NewClimbRepository(db)
	ctx := context.Background()

	climb := seedClimb(t, db, sessionID, "Purple", 1)

	owner, err := repo.GetOwner(ctx, climb.ID)
	if err != nil {
		t.Fatalf("GetOwner: %v", err)
	}
	if owner != "climber" {
		t.Fatalf("expected owner climber, got %s", owner)
	}
}

func TestClimbRepository_GetOwner_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewClimbRepository(db)

	_, err := repo.GetOwner(context.Background(), 9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
