package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/promedhq/promed/internal/domain"
)

const sessionCookieName = "promed_session"

type contextKey string

const principalKey = contextKey("principal")

// requireSession guards protected routes. Requests without a valid
// session are redirected to the login page; otherwise the principal is
// attached to the request context for the handler.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := s.sessionPrincipal(r)
		if principal == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// sessionPrincipal resolves the session cookie to a principal, or nil.
func (s *Server) sessionPrincipal(r *http.Request) *domain.Principal {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	principal, err := s.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return principal
}

// principalFromContext returns the principal attached by requireSession.
func principalFromContext(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*domain.Principal)
	return principal, ok
}

// openSession stores a fresh session for user and sets the cookie.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	token := uuid.NewString()
	principal := &domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	ttl := time.Duration(s.cfg.Session.TTLHours) * time.Hour
	if err := s.sessions.Put(r.Context(), token, principal, ttl); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// closeSession deletes the session (idempotent) and expires the cookie.
func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		_ = s.sessions.Delete(r.Context(), cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
