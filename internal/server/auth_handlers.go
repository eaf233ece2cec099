package server

import (
	"errors"
	"net/http"

	"github.com/promedhq/promed/internal/apperrors"
)

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "signup.html", map[string]interface{}{
		"Title": "Sign Up",
		"User":  s.sessionPrincipal(r),
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not parse form")
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := s.users.Register(r.Context(), username, email, password)
	if err != nil {
		s.errs.Handle(r.Context(), err)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) &&
			(appErr.Type == apperrors.ErrorTypeValidation || appErr.Type == apperrors.ErrorTypeDuplicateKey) {
			s.render(w, http.StatusOK, "signup.html", map[string]interface{}{
				"Title":    "Sign Up",
				"Error":    appErr.Message,
				"Username": username,
				"Email":    email,
			})
			return
		}
		s.renderError(w, r, http.StatusInternalServerError, "Could not create your account")
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Log In",
		"User":  s.sessionPrincipal(r),
	}
	if r.URL.Query().Get("registered") == "1" {
		data["Message"] = "Account created, please log in."
	}
	s.render(w, http.StatusOK, "login.html", data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not parse form")
		return
	}

	identifier := r.FormValue("identifier")
	password := r.FormValue("password")

	user, err := s.users.Authenticate(r.Context(), identifier, password)
	if err != nil {
		s.errs.Handle(r.Context(), err)

		if apperrors.IsType(err, apperrors.ErrorTypeAuth) {
			s.render(w, http.StatusUnauthorized, "login.html", map[string]interface{}{
				"Title":      "Log In",
				"Error":      "Invalid credentials!",
				"Identifier": identifier,
			})
			return
		}
		s.renderError(w, r, http.StatusInternalServerError, "Could not log you in")
		return
	}

	if err := s.openSession(w, r, user); err != nil {
		s.errs.Handle(r.Context(), err)
		s.renderError(w, r, http.StatusInternalServerError, "Could not establish session")
		return
	}
	http.Redirect(w, r, "/medicines", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.closeSession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
