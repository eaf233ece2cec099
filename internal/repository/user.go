package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Uniqueness of username and email is enforced
// by the database, so a concurrent duplicate signup has exactly one
// winner; the loser gets ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateUser
	}
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// FindByID returns a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

// FindByUsernameOrEmail looks a user up by username (exact) or email
// (case-insensitive; emails are stored lowercased).
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

// Delete removes a user and, via the association, all owned medicines.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select(clause.Associations).Delete(&domain.User{ID: id}).Error
		if err != nil {
			return apperrors.NewDatabaseError(err)
		}
		return nil
	})
}
