package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/repository"
	"github.com/promedhq/promed/internal/utils"
)

type alertFixture struct {
	svc       *AlertService
	users     *repository.UserRepository
	medicines *repository.MedicineRepository
	notifier  *fakeNotifier
}

func newAlertFixture(t *testing.T) *alertFixture {
	t.Helper()
	db := openTestDB(t)
	users := repository.NewUserRepository(db)
	medicines := repository.NewMedicineRepository(db)
	notifier := newFakeNotifier()
	return &alertFixture{
		svc:       NewAlertService(medicines, users, notifier),
		users:     users,
		medicines: medicines,
		notifier:  notifier,
	}
}

func (f *alertFixture) seedUser(t *testing.T, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: email, PasswordHash: "hash"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *alertFixture) seedMedicine(t *testing.T, ownerID uint, name, expiry string) *domain.Medicine {
	t.Helper()
	mfg, err := utils.ParseDate("2025-01-01")
	require.NoError(t, err)
	exp, err := utils.ParseDate(expiry)
	require.NoError(t, err)
	medicine := &domain.Medicine{
		Name:              name,
		FactoryName:       "Acme Pharma",
		ManufacturingDate: mfg,
		ExpiryDate:        exp,
		Uses:              "testing",
		QRCodePath:        "static/qrcodes/x.png",
		UserID:            ownerID,
	}
	require.NoError(t, f.medicines.Create(context.Background(), medicine))
	return medicine
}

func date(s string) time.Time {
	t, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// The scenario from the product brief: a medicine expiring 2025-01-10
// gets a "tomorrow" warning on the 9th and an expiry alert on the 10th,
// each exactly once.
func TestScanLifecycle(t *testing.T) {
	t.Parallel()

	f := newAlertFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "a@x.com")
	medicine := f.seedMedicine(t, alice.ID, "Aspirin", "2025-01-10")

	// Day before the threshold: nothing happens.
	report, err := f.svc.Scan(ctx, date("2025-01-08"))
	require.NoError(t, err)
	assert.Zero(t, report.PriorSent+report.ExpirySent+report.Failed)
	assert.Empty(t, f.notifier.sentTo("a@x.com"))

	// Expiry minus one: the tomorrow warning goes out and is flagged.
	report, err = f.svc.Scan(ctx, date("2025-01-09"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.PriorSent)
	mails := f.notifier.sentTo("a@x.com")
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Subject, "expires tomorrow")
	assert.Contains(t, mails[0].Body, "Aspirin")

	got, err := f.medicines.FindByID(ctx, medicine.ID)
	require.NoError(t, err)
	assert.True(t, got.AlertSentPrior)
	assert.False(t, got.AlertSentExpiryDay)

	// Rerunning the same day sends nothing further.
	report, err = f.svc.Scan(ctx, date("2025-01-09"))
	require.NoError(t, err)
	assert.Zero(t, report.PriorSent+report.ExpirySent)
	assert.Len(t, f.notifier.sentTo("a@x.com"), 1)

	// Expiry day: the expired alert goes out once.
	report, err = f.svc.Scan(ctx, date("2025-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpirySent)
	mails = f.notifier.sentTo("a@x.com")
	require.Len(t, mails, 2)
	assert.Contains(t, mails[1].Subject, "has expired")

	got, err = f.medicines.FindByID(ctx, medicine.ID)
	require.NoError(t, err)
	assert.True(t, got.AlertSentExpiryDay)

	report, err = f.svc.Scan(ctx, date("2025-01-10"))
	require.NoError(t, err)
	assert.Zero(t, report.PriorSent+report.ExpirySent)
	assert.Len(t, f.notifier.sentTo("a@x.com"), 2)
}

func TestScanExpiryAlertFiresWithoutPriorWarning(t *testing.T) {
	t.Parallel()

	f := newAlertFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "a@x.com")

	f.seedMedicine(t, alice.ID, "Aspirin", "2025-01-10")

	// The scan never ran on the 9th; the expiry-day alert still fires.
	report, err := f.svc.Scan(ctx, date("2025-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 0, report.PriorSent)
	assert.Equal(t, 1, report.ExpirySent)
}

func TestScanSkipsAlreadyExpired(t *testing.T) {
	t.Parallel()

	f := newAlertFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "a@x.com")

	f.seedMedicine(t, alice.ID, "Old stock", "2025-01-10")

	// First scan happens two days after expiry: the exact-date
	// predicates select nothing, ever.
	report, err := f.svc.Scan(ctx, date("2025-01-12"))
	require.NoError(t, err)
	assert.Zero(t, report.PriorSent+report.ExpirySent+report.Failed)
	assert.Empty(t, f.notifier.sentTo("a@x.com"))
}

func TestScanRetriesAfterDeliveryFailure(t *testing.T) {
	t.Parallel()

	f := newAlertFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "a@x.com")
	medicine := f.seedMedicine(t, alice.ID, "Aspirin", "2025-01-10")

	f.notifier.failFor["a@x.com"] = apperrors.NewDeliveryError(assert.AnError, "a@x.com")

	report, err := f.svc.Scan(ctx, date("2025-01-09"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.PriorSent)

	// Flag stays false, so the next scan retries.
	got, err := f.medicines.FindByID(ctx, medicine.ID)
	require.NoError(t, err)
	assert.False(t, got.AlertSentPrior)

	delete(f.notifier.failFor, "a@x.com")

	report, err = f.svc.Scan(ctx, date("2025-01-09"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.PriorSent)
	assert.Len(t, f.notifier.sentTo("a@x.com"), 1)
}

func TestScanIsolatesPerRecordFailures(t *testing.T) {
	t.Parallel()

	f := newAlertFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice", "a@x.com")
	bob := f.seedUser(t, "bob", "b@x.com")

	f.seedMedicine(t, alice.ID, "Aspirin", "2025-01-10")
	bobsMedicine := f.seedMedicine(t, bob.ID, "Ibuprofen", "2025-01-10")

	f.notifier.failFor["a@x.com"] = apperrors.NewDeliveryError(assert.AnError, "a@x.com")

	report, err := f.svc.Scan(ctx, date("2025-01-09"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.PriorSent)

	// Bob's alert went through despite Alice's failure.
	require.Len(t, f.notifier.sentTo("b@x.com"), 1)
	got, err := f.medicines.FindByID(ctx, bobsMedicine.ID)
	require.NoError(t, err)
	assert.True(t, got.AlertSentPrior)
}
