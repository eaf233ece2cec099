package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/promedhq/promed/internal/domain"
)

// openTestDB gives each test its own in-memory SQLite database. Max open
// conns is pinned to 1 because every new connection to ":memory:" would
// otherwise see a fresh empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Medicine{}))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// fakeNotifier records sends and can fail selected recipients.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]error)}
}

func (f *fakeNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[recipient]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) sentTo(recipient string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.Recipient == recipient {
			out = append(out, m)
		}
	}
	return out
}
