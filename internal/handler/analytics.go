package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/crag-log/internal/service"
	"github.com/msomdec/crag-log/internal/view"
)

// AnalyticsHandler handles the analytics page and its JSON API.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// HandleAnalyticsPage renders the analytics page.
// GET /analytics
func (h *AnalyticsHandler) HandleAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	series, err := h.analytics.WeeklySeries(r.Context(), user.Username)
	if err != nil {
		slog.Error("weekly series", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	stats, err := h.analytics.SessionStats(r.Context(), user.Username)
	if err != nil {
		slog.Error("session stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.AnalyticsPage(user.DisplayName, series, stats).Render(r.Context(), w)
}

// HandleWeeklyJSON returns the per-week series for the charting consumer.
// GET /api/analytics/weekly
// Response: {"series": [...]}
func (h *AnalyticsHandler) HandleWeeklyJSON(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	series, err := h.analytics.WeeklySeries(r.Context(), user.Username)
	if err != nil {
		slog.Error("weekly series", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"series": toWeekPointDTOs(series),
	})
}
