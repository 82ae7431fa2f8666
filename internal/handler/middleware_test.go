package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/handler"
	"github.com/msomdec/crag-log/internal/repository/sqlite"
	"github.com/msomdec/crag-log/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

// testEnv bundles everything RegisterRoutes needs over a throwaway database.
type testEnv struct {
	auth      *service.AuthService
	workflow  *service.WorkflowService
	summaries *service.SummaryService
	analytics *service.AnalyticsService
	taxonomy  *service.Taxonomy
	climbs    domain.ClimbRepository
	limiter   *service.TokenBucket
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	taxonomy := service.NewTaxonomy()
	sessions := db.Sessions()
	climbs := db.Climbs()

	return &testEnv{
		auth:      service.NewAuthService(db.Users(), testJWTSecret, 4), // cost 4 for fast tests
		workflow:  service.NewWorkflowService(sessions, climbs, taxonomy),
		summaries: service.NewSummaryService(sessions, climbs),
		analytics: service.NewAnalyticsService(sessions),
		taxonomy:  taxonomy,
		climbs:    climbs,
		limiter:   service.NewTokenBucket(100, 100), // effectively unlimited in tests
	}
}

func (e *testEnv) mux() *http.ServeMux {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, e.auth, e.workflow, e.summaries, e.analytics,
		e.taxonomy, e.climbs, e.limiter, false)
	return mux
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "validuser", "Valid User", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := env.auth.Login(ctx, "validuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handler.UserFromContext(r.Context())
		if user != nil {
			gotUser = user.DisplayName
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "Valid User" {
		t.Fatalf("expected user 'Valid User', got %q", gotUser)
	}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "invalid.jwt.token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "tamperuser", "Tamper", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := env.auth.Login(ctx, "tamperuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tampered := token[:len(token)-1] + "X"

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: tampered})
	w := httptest.NewRecorder()

	handler.RequireAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestOptionalAuth_WithToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "optuser", "Optional", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := env.auth.Login(ctx, "optuser", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handler.UserFromContext(r.Context())
		if user != nil {
			gotUser = user.DisplayName
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.OptionalAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "Optional" {
		t.Fatalf("expected user 'Optional', got %q", gotUser)
	}
}

func TestOptionalAuth_WithoutToken(t *testing.T) {
	env := newTestEnv(t)

	var sawNilUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawNilUser = handler.UserFromContext(r.Context()) == nil
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.OptionalAuth(env.auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !sawNilUser {
		t.Fatal("expected nil user in context for unauthenticated request")
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.SecurityHeaders(inner).ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
	if got := w.Header().Get("Referrer-Policy"); got != "strict-origin-when-cross-origin" {
		t.Fatalf("expected strict-origin-when-cross-origin, got %q", got)
	}
}
