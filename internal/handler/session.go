package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/service"
	"github.com/msomdec/crag-log/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const maxPhotoSize = 10 << 20 // 10MB

// SessionHandler drives the session workflow over HTTP: one page that
// renders the current workflow state, plus the transition endpoints.
type SessionHandler struct {
	workflow  *service.WorkflowService
	summaries *service.SummaryService
	taxonomy  *service.Taxonomy
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workflow *service.WorkflowService, summaries *service.SummaryService, taxonomy *service.Taxonomy) *SessionHandler {
	return &SessionHandler{workflow: workflow, summaries: summaries, taxonomy: taxonomy}
}

// HandleSessionPage renders the page for the user's current workflow state.
// GET /session
func (h *SessionHandler) HandleSessionPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	errMsg := ""
	if r.URL.Query().Get("error") == "end" {
		errMsg = "Could not end the session. Please try again."
	}
	h.renderState(w, r, user, errMsg)
}

// HandleStart creates the session and moves the workflow to climb entry.
// POST /session/start
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.workflow.Start(r.Context(), user.Username, r.PostFormValue("gym_name"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownGym) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			view.ChooseGymPage(user.DisplayName, h.taxonomy.Gyms(), "Unknown gym. Please pick one from the list.").Render(r.Context(), w)
			return
		}
		if errors.Is(err, domain.ErrSessionClosed) {
			// Already on the summary; nothing to start.
			http.Redirect(w, r, "/session", http.StatusSeeOther)
			return
		}
		slog.Error("start session", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		view.ChooseGymPage(user.DisplayName, h.taxonomy.Gyms(), "Could not start the session. Please try again.").Render(r.Context(), w)
		return
	}

	http.Redirect(w, r, "/session", http.StatusSeeOther)
}

// HandleSubmitClimb records one climb against the active session.
// POST /session/climbs
func (h *SessionHandler) HandleSubmitClimb(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	photo, errMsg := readPhoto(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		h.renderState(w, r, user, errMsg)
		return
	}

	input := service.ClimbInput{
		ClimbName:     r.PostFormValue("climb_name"),
		Grade:         r.PostFormValue("grade"),
		GradeJudgment: r.PostFormValue("grade_judgment"),
		NumAttempts:   formInt(r, "num_attempts", domain.MinAttempts),
		Notes:         r.PostFormValue("notes"),
		Sent:          r.PostFormValue("sent") == "true",
		StarRating:    formInt(r, "star_rating", 0),
		Photo:         photo,
	}

	if _, err := h.workflow.SubmitClimb(r.Context(), user.Username, input); err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			http.Redirect(w, r, "/session", http.StatusSeeOther)
			return
		}
		// The workflow kept the form values; re-render with them.
		slog.Error("submit climb", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.renderState(w, r, user, "Could not save the climb. Please try again.")
		return
	}

	http.Redirect(w, r, "/session", http.StatusSeeOther)
}

// HandleEnd closes the session and moves the workflow to the summary.
// POST /session/end
func (h *SessionHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	_, err := h.workflow.EndSession(r.Context(), user.Username)

	sse := datastar.NewSSE(w, r)
	if err != nil && !errors.Is(err, domain.ErrNoActiveSession) {
		// The session is still open; send the user back to the climb
		// form with a message so they can retry the close.
		slog.Error("end session", "error", err)
		sse.Redirect("/session?error=end")
		return
	}
	sse.Redirect("/session")
}

// HandleReset clears the workflow context for a fresh session.
// POST /session/reset
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.workflow.Reset(user.Username)

	sse := datastar.NewSSE(w, r)
	sse.Redirect("/session")
}

func (h *SessionHandler) renderState(w http.ResponseWriter, r *http.Request, user *domain.User, errMsg string) {
	wf := h.workflow.Context(user.Username)

	switch wf.State {
	case service.StateEnterClimbs:
		grades, err := h.taxonomy.GradesFor(wf.GymName)
		if err != nil {
			slog.Error("grades for workflow gym", "gym", wf.GymName, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.EnterClimbsPage(user.DisplayName, wf, grades, errMsg).Render(r.Context(), w)
	case service.StateSummary:
		summary, err := h.summaries.Summarize(r.Context(), wf.SessionID)
		if err != nil {
			slog.Error("summarize session", "session_id", wf.SessionID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.SummaryPage(user.DisplayName, summary).Render(r.Context(), w)
	default:
		view.ChooseGymPage(user.DisplayName, h.taxonomy.Gyms(), errMsg).Render(r.Context(), w)
	}
}

// readPhoto reads the optional photo upload. It returns a non-empty
// message when the upload is present but not an accepted image.
func readPhoto(r *http.Request) ([]byte, string) {
	file, _, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ""
		}
		return nil, "Could not read the uploaded photo."
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "Could not read the uploaded photo."
	}
	if len(data) == 0 {
		return nil, ""
	}

	// Detect content type from file bytes (more reliable than the multipart header).
	contentType := http.DetectContentType(data)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, "Only JPEG and PNG photos are accepted."
	}
	return data, ""
}

func formInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.PostFormValue(name))
	if err != nil {
		return fallback
	}
	return v
}
