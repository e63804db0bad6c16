package repository

import (
	"go-clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uint) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uint) ([]entity.Appointment, error)
	FindUnassigned(db *gorm.DB) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	DecidePending(db *gorm.DB, id uint, status entity.AppointmentStatus) (int64, error)
	CountByStatus(db *gorm.DB) (map[entity.AppointmentStatus]int64, error)
	Count(db *gorm.DB) (int64, error)
}
