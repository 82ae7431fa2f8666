package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/service"
	"github.com/msomdec/crag-log/internal/view"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	loginLimiter *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, loginLimiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, loginLimiter: loginLimiter, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	view.LoginPage("").Render(r.Context(), w)
}

// HandleLogin processes a login form submission. Successful logins set
// the auth_token cookie and redirect to the session page.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.loginLimiter.Allow(clientIP(r)) {
		w.WriteHeader(http.StatusTooManyRequests)
		view.LoginPage("Too many login attempts. Please wait and try again.").Render(r.Context(), w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			w.WriteHeader(http.StatusUnauthorized)
			view.LoginPage("Invalid username or password.").Render(r.Context(), w)
			return
		}
		slog.Error("login user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	http.Redirect(w, r, "/session", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	view.RegisterPage("").Render(r.Context(), w)
}

// HandleRegister processes a registration form submission.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.auth.Register(r.Context(),
		r.PostFormValue("username"), r.PostFormValue("display_name"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			w.WriteHeader(http.StatusConflict)
			view.RegisterPage("An account with that username already exists.").Render(r.Context(), w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			view.RegisterPage(err.Error()).Render(r.Context(), w)
			return
		}
		slog.Error("register user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
