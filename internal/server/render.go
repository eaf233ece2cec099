package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/promedhq/promed/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = mustParseTemplates()

// mustParseTemplates parses each page together with the shared layout.
func mustParseTemplates() map[string]*template.Template {
	pages := []string{
		"home.html",
		"about.html",
		"signup.html",
		"login.html",
		"add_medicine.html",
		"medicines.html",
		"medicine.html",
		"qr_scan.html",
		"error.html",
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+page))
	}
	return parsed
}

// render writes the named page wrapped in the layout. data keys used by
// the layout: Title, User; pages add their own.
func (s *Server) render(w http.ResponseWriter, status int, page string, data map[string]interface{}) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		logger.Error("Unknown template requested", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		logger.Error("Failed to execute template", "page", page, "error", err)
	}
}

// renderError shows the shared error page with the given status.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, status, "error.html", map[string]interface{}{
		"Title":      http.StatusText(status),
		"StatusCode": status,
		"StatusText": http.StatusText(status),
		"Message":    message,
		"User":       s.sessionPrincipal(r),
	})
}
