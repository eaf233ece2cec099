package server

import (
	"net/http"

	"github.com/promedhq/promed/internal/qr"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", map[string]interface{}{
		"Title": "ProMed",
		"User":  s.sessionPrincipal(r),
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "about.html", map[string]interface{}{
		"Title": "About Us",
		"User":  s.sessionPrincipal(r),
	})
}

// handleQRScan renders the fields embedded in a scanned QR payload.
// Public on purpose: whoever scans the code gets the readable page.
func (s *Server) handleQRScan(w http.ResponseWriter, r *http.Request) {
	fields, err := qr.DecodeValues(r.URL.Query())
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "This QR code could not be read")
		return
	}
	s.render(w, http.StatusOK, "qr_scan.html", map[string]interface{}{
		"Title":  "Scan Result",
		"User":   s.sessionPrincipal(r),
		"Fields": fields,
	})
}
