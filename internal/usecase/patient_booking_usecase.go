package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time format, use HH:MM (24-hour)")
)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04"
)

type PatientBookingUsecase interface {
	CreateAppointment(ctx context.Context, actor *entity.User, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, actor *entity.User) ([]dto.AppointmentResponse, error)
}

type patientBookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewPatientBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
) PatientBookingUsecase {
	return &patientBookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

func (u *patientBookingUsecase) CreateAppointment(ctx context.Context, actor *entity.User, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityBook); err != nil {
		return nil, err
	}

	// time.Parse rejects impossible dates such as 2026-02-30.
	date, err := time.Parse(bookingDateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, ErrInvalidDate
	}
	clock, err := time.Parse(bookingTimeLayout, strings.TrimSpace(req.Time))
	if err != nil {
		return nil, ErrInvalidTime
	}

	appointment := &entity.Appointment{
		PatientID:        actor.ID,
		Date:             date,
		Time:             clock.Format(bookingTimeLayout),
		Status:           entity.AppointmentStatusPending,
		Message:          req.Message,
		PatientFullName:  req.PatientFullName,
		PatientInsurance: req.PatientInsurance,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %d requested by user %d", appointment.ID, actor.ID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *patientBookingUsecase) GetMyAppointments(ctx context.Context, actor *entity.User) ([]dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityBook); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}
