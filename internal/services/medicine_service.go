package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/logger"
	"github.com/promedhq/promed/internal/qr"
	"github.com/promedhq/promed/internal/repository"
	"github.com/promedhq/promed/internal/utils"
)

// MedicineService implements owner-scoped medicine CRUD with QR image
// generation on create.
type MedicineService struct {
	medicines *repository.MedicineRepository
	encoder   *qr.Encoder
	qrDir     string
}

// NewMedicineService creates a new medicine service. qrDir is where
// rendered QR images are written.
func NewMedicineService(medicines *repository.MedicineRepository, encoder *qr.Encoder, qrDir string) *MedicineService {
	return &MedicineService{
		medicines: medicines,
		encoder:   encoder,
		qrDir:     qrDir,
	}
}

// Create validates input, renders the QR image and persists the medicine.
// The row only becomes visible once both the image and the insert
// succeed; a failed insert cleans the image up again.
func (s *MedicineService) Create(ctx context.Context, owner *domain.Principal, input domain.MedicineInput) (*domain.Medicine, error) {
	name := strings.TrimSpace(input.Name)
	factory := strings.TrimSpace(input.FactoryName)
	uses := strings.TrimSpace(input.Uses)

	if name == "" || factory == "" || uses == "" ||
		strings.TrimSpace(input.ManufacturingDate) == "" || strings.TrimSpace(input.ExpiryDate) == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	manufactured, err := utils.ParseDate(strings.TrimSpace(input.ManufacturingDate))
	if err != nil {
		return nil, apperrors.NewDateFormatError("manufacturing", err)
	}
	expiry, err := utils.ParseDate(strings.TrimSpace(input.ExpiryDate))
	if err != nil {
		return nil, apperrors.NewDateFormatError("expiry", err)
	}
	if !expiry.After(manufactured) {
		return nil, apperrors.ErrExpiryNotAfterMfg
	}

	medicine := &domain.Medicine{
		Name:              name,
		FactoryName:       factory,
		ManufacturingDate: utils.Midnight(manufactured),
		ExpiryDate:        utils.Midnight(expiry),
		Uses:              uses,
		UserID:            owner.UserID,
	}

	// Random token keeps filenames globally unique even for identical
	// medicine names.
	filename := uuid.NewString() + ".png"
	imagePath := filepath.Join(s.qrDir, filename)

	payload := s.encoder.Encode(medicine)
	if err := qr.Render(payload, imagePath); err != nil {
		return nil, err
	}
	medicine.QRCodePath = imagePath

	if err := s.medicines.Create(ctx, medicine); err != nil {
		if rmErr := os.Remove(imagePath); rmErr != nil {
			logger.Warn("Failed to clean up QR image after insert failure",
				"path", imagePath, "error", rmErr)
		}
		return nil, err
	}
	return medicine, nil
}

// List returns the owner's medicines, soonest expiry first.
func (s *MedicineService) List(ctx context.Context, owner *domain.Principal) ([]domain.Medicine, error) {
	return s.medicines.ListByOwner(ctx, owner.UserID)
}

// Get returns one medicine. ErrForbidden when the record exists but
// belongs to someone else; the HTTP layer maps the two cases to 404/403.
func (s *MedicineService) Get(ctx context.Context, owner *domain.Principal, id uint) (*domain.Medicine, error) {
	medicine, err := s.medicines.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine.UserID != owner.UserID {
		return nil, apperrors.ErrForbidden
	}
	return medicine, nil
}

// Delete removes a medicine and best-effort removes its QR image. An
// image removal failure is logged as a warning but the row deletion
// still stands.
func (s *MedicineService) Delete(ctx context.Context, owner *domain.Principal, id uint) error {
	medicine, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := s.medicines.Delete(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(medicine.QRCodePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove QR image for deleted medicine",
			"path", medicine.QRCodePath, "medicine_id", id, "error", err)
	}
	return nil
}
