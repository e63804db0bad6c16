package usecase

import (
	"errors"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrAppointmentDecided  = errors.New("appointment has already been decided")
)

// parseDecision accepts only the statuses a pending appointment may move to.
func parseDecision(status string) (entity.AppointmentStatus, error) {
	decision := entity.AppointmentStatus(status)
	if !decision.IsDecision() {
		return "", ErrInvalidStatus
	}
	return decision, nil
}

// applyDecision moves a pending appointment to its final status inside tx and reloads it.
// The update is conditional on the row still being pending, so a concurrent decision loses.
func applyDecision(tx *gorm.DB, log *logrus.Logger, repo repository.AppointmentRepository, current *entity.Appointment, decision entity.AppointmentStatus) (*entity.Appointment, error) {
	if !current.IsPending() {
		return nil, ErrAppointmentDecided
	}

	id := current.ID
	affected, err := repo.DecidePending(tx, id, decision)
	if err != nil {
		log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentDecided
	}

	appointment, err := repo.FindByID(tx, id)
	if err != nil {
		log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
