package domain

import (
	"time"
)

// User is an account that owns medicines. Created at signup and never
// mutated afterwards; deleting a user cascades to its medicines.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string    `gorm:"uniqueIndex;size:100;not null"`
	Email        string    `gorm:"uniqueIndex;size:120;not null"` // stored lowercased
	PasswordHash string    `gorm:"size:255;not null"`

	Medicines []Medicine `gorm:"constraint:OnDelete:CASCADE"`
}

// Medicine is a tracked inventory item. Manufacturing/expiry dates are
// normalized to midnight UTC so calendar-date equality queries work.
type Medicine struct {
	ID                uint      `gorm:"primaryKey"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Name              string    `gorm:"size:100;not null"`
	FactoryName       string    `gorm:"size:100;not null"`
	ManufacturingDate time.Time `gorm:"not null"`
	ExpiryDate        time.Time `gorm:"not null;index"`
	Uses              string    `gorm:"type:text;not null"`
	QRCodePath        string    `gorm:"size:200;not null"`

	// One-way flags, false -> true, flipped only by the alert engine
	// after a confirmed send.
	AlertSentPrior     bool `gorm:"not null;default:false"`
	AlertSentExpiryDay bool `gorm:"not null;default:false"`

	UserID uint `gorm:"not null;index"`
	User   *User
}

// Principal is the authenticated identity attached to a session.
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AlertFlag names one of the two alert-state flags on a medicine.
type AlertFlag string

const (
	// AlertFlagPrior marks the "expires tomorrow" warning as sent.
	AlertFlagPrior AlertFlag = "alert_sent_prior"
	// AlertFlagExpiryDay marks the expiry-day alert as sent.
	AlertFlagExpiryDay AlertFlag = "alert_sent_expiry_day"
)
