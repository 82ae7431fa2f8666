package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/crag-log/internal/domain"
)

// PhotoHandler serves climb photo bytes.
type PhotoHandler struct {
	climbs domain.ClimbRepository
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(climbs domain.ClimbRepository) *PhotoHandler {
	return &PhotoHandler{climbs: climbs}
}

// HandleServe serves a climb's photo with a detected Content-Type.
// Only the owner of the climb's session may fetch it.
// GET /climbs/{id}/photo
func (h *PhotoHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	climbID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	owner, err := h.climbs.GetOwner(r.Context(), climbID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get climb owner", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if owner != user.Username {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	climb, err := h.climbs.GetByID(r.Context(), climbID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get climb", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if len(climb.Photo) == 0 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(climb.Photo))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(climb.Photo)))
	w.Write(climb.Photo)
}
