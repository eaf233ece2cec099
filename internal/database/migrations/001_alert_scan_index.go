package migrations

import "gorm.io/gorm"

// The daily scan filters on expiry_date plus one of the alert flags;
// a composite index keeps that query off a full table walk.
func init() {
	Register("001_alert_scan_index", func(db *gorm.DB) error {
		if err := db.Exec(
			"CREATE INDEX IF NOT EXISTS idx_medicines_expiry_prior ON medicines (expiry_date, alert_sent_prior)",
		).Error; err != nil {
			return err
		}
		return db.Exec(
			"CREATE INDEX IF NOT EXISTS idx_medicines_expiry_day ON medicines (expiry_date, alert_sent_expiry_day)",
		).Error
	})
}
