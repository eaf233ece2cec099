// Package services contains the application services: signup/login,
// medicine CRUD and the expiry alert engine.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/logger"
	"github.com/promedhq/promed/internal/repository"
	"github.com/promedhq/promed/internal/utils"
)

// AlertService scans for medicines crossing an alert threshold and
// notifies their owners exactly once per threshold.
//
// Both queries use exact-date equality, so a medicine already past its
// expiry date when a scan first sees it is never alerted. That matches
// the historical behavior; widening the predicate would change
// notification volume and needs an explicit product decision.
type AlertService struct {
	medicines *repository.MedicineRepository
	users     *repository.UserRepository
	notifier  domain.Notifier
}

// NewAlertService creates a new alert engine.
func NewAlertService(medicines *repository.MedicineRepository, users *repository.UserRepository, notifier domain.Notifier) *AlertService {
	return &AlertService{
		medicines: medicines,
		users:     users,
		notifier:  notifier,
	}
}

// Scan runs one alert pass for the given calendar date. It is idempotent
// within a day: each threshold re-queries on its flag, so an already
// flagged record is never re-selected. A send failure leaves the flag
// false and the record is retried on the next scan; failures are
// isolated per record so one bad address cannot stall the batch.
func (s *AlertService) Scan(ctx context.Context, today time.Time) (*domain.ScanReport, error) {
	today = utils.Midnight(today)
	report := &domain.ScanReport{}

	// "Expires tomorrow" warnings.
	due, err := s.medicines.FindDueForAlert(ctx, today.AddDate(0, 0, 1), domain.AlertFlagPrior)
	if err != nil {
		return report, err
	}
	for i := range due {
		if s.processAlert(ctx, &due[i], domain.AlertFlagPrior) {
			report.PriorSent++
		} else {
			report.Failed++
		}
	}

	// Expiry-day alerts; these fire even if the prior warning was missed.
	due, err = s.medicines.FindDueForAlert(ctx, today, domain.AlertFlagExpiryDay)
	if err != nil {
		return report, err
	}
	for i := range due {
		if s.processAlert(ctx, &due[i], domain.AlertFlagExpiryDay) {
			report.ExpirySent++
		} else {
			report.Failed++
		}
	}

	logger.Info("Alert scan finished",
		"date", utils.FormatDate(today),
		"prior_sent", report.PriorSent,
		"expiry_sent", report.ExpirySent,
		"failed", report.Failed)
	return report, nil
}

// processAlert sends one notification and flips the flag only after a
// confirmed send. Returns true when both steps succeeded.
func (s *AlertService) processAlert(ctx context.Context, medicine *domain.Medicine, flag domain.AlertFlag) bool {
	owner, err := s.users.FindByID(ctx, medicine.UserID)
	if err != nil {
		logger.Error("Failed to load medicine owner",
			"medicine_id", medicine.ID, "user_id", medicine.UserID, "error", err)
		return false
	}

	subject, body := alertMessage(medicine, flag, owner.Username)
	if err := s.notifier.Send(ctx, owner.Email, subject, body); err != nil {
		logger.Warn("Alert email not delivered, will retry on next scan",
			"medicine_id", medicine.ID, "recipient", owner.Email, "error", err)
		return false
	}

	if err := s.medicines.MarkAlertSent(ctx, medicine.ID, flag); err != nil {
		// The email went out but the flag did not commit; the next scan
		// will re-send. Logged loudly since it means a duplicate mail.
		logger.Error("Failed to mark alert as sent",
			"medicine_id", medicine.ID, "flag", flag, "error", err)
		return false
	}
	return true
}

func alertMessage(medicine *domain.Medicine, flag domain.AlertFlag, username string) (subject, body string) {
	expiry := utils.FormatDate(medicine.ExpiryDate)
	if flag == domain.AlertFlagPrior {
		subject = fmt.Sprintf("ProMed: %s expires tomorrow", medicine.Name)
		body = fmt.Sprintf("Hello %s,\n\nYour medicine %q (factory: %s) expires tomorrow, on %s.\n\nPlease replace it in time.\n\n— ProMed",
			username, medicine.Name, medicine.FactoryName, expiry)
		return subject, body
	}
	subject = fmt.Sprintf("ProMed: %s has expired", medicine.Name)
	body = fmt.Sprintf("Hello %s,\n\nYour medicine %q (factory: %s) has expired today, on %s.\n\nDo not use it any further.\n\n— ProMed",
		username, medicine.Name, medicine.FactoryName, expiry)
	return subject, body
}
