package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
)

func TestUserCreateAndFind(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.FindByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	// Email lookup is case-insensitive; stored emails are lowercased.
	byEmail, err := repo.FindByUsernameOrEmail(ctx, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserFindMissing(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.FindByUsernameOrEmail(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserDuplicateSignupHasOneWinner(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	sameUsername := &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, sameUsername), apperrors.ErrDuplicateUser)

	sameEmail := &domain.User{Username: "alice2", Email: "a@x.com", PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Create(ctx, sameEmail), apperrors.ErrDuplicateUser)
}

func TestUserDeleteCascadesMedicines(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	users := NewUserRepository(db)
	medicines := NewMedicineRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	medicine := newTestMedicine(user.ID, "2025-01-10")
	require.NoError(t, medicines.Create(ctx, medicine))

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := medicines.FindByID(ctx, medicine.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
