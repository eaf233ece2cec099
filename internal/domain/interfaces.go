package domain

import (
	"context"
	"time"
)

// UserService handles signup and credential checks.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Authenticate(ctx context.Context, identifier, password string) (*User, error)
}

// MedicineService handles medicine CRUD scoped to the owning user.
type MedicineService interface {
	Create(ctx context.Context, owner *Principal, input MedicineInput) (*Medicine, error)
	List(ctx context.Context, owner *Principal) ([]Medicine, error)
	Get(ctx context.Context, owner *Principal, id uint) (*Medicine, error)
	Delete(ctx context.Context, owner *Principal, id uint) error
}

// MedicineInput is the raw form input for creating a medicine. Dates are
// parsed and validated by the service.
type MedicineInput struct {
	Name              string
	FactoryName       string
	ManufacturingDate string
	ExpiryDate        string
	Uses              string
}

// AlertEngine runs one expiry scan for the given calendar date.
type AlertEngine interface {
	Scan(ctx context.Context, today time.Time) (*ScanReport, error)
}

// ScanReport summarizes one alert scan.
type ScanReport struct {
	PriorSent  int
	ExpirySent int
	Failed     int
}

// Notifier delivers a notification to a recipient address.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SessionStore persists session principals keyed by opaque token.
type SessionStore interface {
	Put(ctx context.Context, token string, principal *Principal, ttl time.Duration) error
	Get(ctx context.Context, token string) (*Principal, error)
	Delete(ctx context.Context, token string) error
}
