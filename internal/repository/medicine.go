// Package repository contains the gorm-backed data store for users and
// medicines. Each logical operation runs in its own transaction scope.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/utils"
	"gorm.io/gorm"
)

// MedicineRepository handles medicine persistence.
type MedicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository.
func NewMedicineRepository(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// Create inserts a new medicine row.
func (r *MedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// FindByID returns a medicine by primary key regardless of owner; the
// service layer decides between not-found and forbidden.
func (r *MedicineRepository) FindByID(ctx context.Context, id uint) (*domain.Medicine, error) {
	var medicine domain.Medicine
	err := r.db.WithContext(ctx).First(&medicine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &medicine, nil
}

// ListByOwner returns the owner's medicines ordered by expiry date
// ascending, soonest-expiring first.
func (r *MedicineRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("expiry_date ASC").
		Find(&medicines).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return medicines, nil
}

// Delete removes a medicine row.
func (r *MedicineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Medicine{}, id)
		if result.Error != nil {
			return apperrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// FindDueForAlert returns medicines whose expiry date equals expiresOn
// and whose given alert flag is still false. The exact-equality predicate
// means a record is selected on at most two calendar days ever.
func (r *MedicineRepository) FindDueForAlert(ctx context.Context, expiresOn time.Time, flag domain.AlertFlag) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("expiry_date = ? AND %s = ?", flag), utils.Midnight(expiresOn), false).
		Find(&medicines).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return medicines, nil
}

// MarkAlertSent flips the given alert flag to true in its own
// transaction. The flag is one-way; there is no reset path.
func (r *MedicineRepository) MarkAlertSent(ctx context.Context, id uint, flag domain.AlertFlag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Medicine{}).
			Where("id = ?", id).
			Update(string(flag), true)
		if result.Error != nil {
			return apperrors.NewDatabaseError(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
