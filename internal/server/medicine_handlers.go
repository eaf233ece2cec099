package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
)

func (s *Server) handleAddMedicinePage(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFromContext(r.Context())
	s.render(w, http.StatusOK, "add_medicine.html", map[string]interface{}{
		"Title": "Add Medicine",
		"User":  principal,
	})
}

func (s *Server) handleAddMedicine(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not parse form")
		return
	}

	input := domain.MedicineInput{
		Name:              r.FormValue("name"),
		FactoryName:       r.FormValue("factory_name"),
		ManufacturingDate: r.FormValue("manufacturing_date"),
		ExpiryDate:        r.FormValue("expiry_date"),
		Uses:              r.FormValue("uses"),
	}

	_, err := s.medicines.Create(r.Context(), principal, input)
	if err != nil {
		s.errs.Handle(r.Context(), err)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Type {
			case apperrors.ErrorTypeValidation, apperrors.ErrorTypeDateFormat, apperrors.ErrorTypeOrder:
				s.render(w, http.StatusOK, "add_medicine.html", map[string]interface{}{
					"Title": "Add Medicine",
					"User":  principal,
					"Error": appErr.Message,
					"Input": input,
				})
				return
			}
		}
		s.renderError(w, r, http.StatusInternalServerError, "Could not save the medicine")
		return
	}

	http.Redirect(w, r, "/medicines", http.StatusSeeOther)
}

func (s *Server) handleListMedicines(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	medicines, err := s.medicines.List(r.Context(), principal)
	if err != nil {
		s.errs.Handle(r.Context(), err)
		s.renderError(w, r, http.StatusInternalServerError, "Could not load your medicines")
		return
	}

	s.render(w, http.StatusOK, "medicines.html", map[string]interface{}{
		"Title":     "My Medicines",
		"User":      principal,
		"Medicines": medicines,
	})
}

func (s *Server) handleMedicineDetail(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	medicine, err := s.medicines.Get(r.Context(), principal, id)
	if err != nil {
		s.respondMedicineError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "medicine.html", map[string]interface{}{
		"Title":    medicine.Name,
		"User":     principal,
		"Medicine": medicine,
	})
}

func (s *Server) handleDeleteMedicine(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := parseID(r.PathValue("id"))
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	if err := s.medicines.Delete(r.Context(), principal, id); err != nil {
		s.respondMedicineError(w, r, err)
		return
	}
	http.Redirect(w, r, "/medicines", http.StatusSeeOther)
}

// respondMedicineError maps service errors to the HTTP boundary: the
// not-found/forbidden distinction only surfaces here as 404 vs 403.
func (s *Server) respondMedicineError(w http.ResponseWriter, r *http.Request, err error) {
	s.errs.Handle(r.Context(), err)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "No such medicine")
	case errors.Is(err, apperrors.ErrForbidden):
		s.renderError(w, r, http.StatusForbidden, "This medicine belongs to another account")
	default:
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong")
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
