package handler

import (
	"net/http"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	workflow *service.WorkflowService,
	summaries *service.SummaryService,
	analytics *service.AnalyticsService,
	taxonomy *service.Taxonomy,
	climbs domain.ClimbRepository,
	loginLimiter *service.TokenBucket,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, loginLimiter, cookieSecure)
	sessionHandler := NewSessionHandler(workflow, summaries, taxonomy)
	analyticsHandler := NewAnalyticsHandler(analytics)
	photoHandler := NewPhotoHandler(climbs)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /", OptionalAuth(auth, http.HandlerFunc(HandleHome)))

	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	mux.Handle("GET /session", RequireAuth(auth, http.HandlerFunc(sessionHandler.HandleSessionPage)))
	mux.Handle("POST /session/start", RequireAuth(auth, http.HandlerFunc(sessionHandler.HandleStart)))
	mux.Handle("POST /session/climbs", RequireAuth(auth, http.HandlerFunc(sessionHandler.HandleSubmitClimb)))
	mux.Handle("POST /session/end", RequireAuth(auth, http.HandlerFunc(sessionHandler.HandleEnd)))
	mux.Handle("POST /session/reset", RequireAuth(auth, http.HandlerFunc(sessionHandler.HandleReset)))

	mux.Handle("GET /climbs/{id}/photo", RequireAuth(auth, http.HandlerFunc(photoHandler.HandleServe)))

	mux.Handle("GET /analytics", RequireAuth(auth, http.HandlerFunc(analyticsHandler.HandleAnalyticsPage)))
	mux.Handle("GET /api/analytics/weekly", RequireAuth(auth, http.HandlerFunc(analyticsHandler.HandleWeeklyJSON)))
}
