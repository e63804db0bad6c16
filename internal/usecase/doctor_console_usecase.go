package usecase

import (
	"context"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorConsoleUsecase interface {
	Dashboard(ctx context.Context, actor *entity.User) (*dto.DoctorDashboardResponse, error)
	UpdateStatus(ctx context.Context, actor *entity.User, id uint, status string) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actor *entity.User, id uint) (*dto.AppointmentResponse, error)
}

type doctorConsoleUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorConsoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
) DoctorConsoleUsecase {
	return &doctorConsoleUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorConsoleUsecase) Dashboard(ctx context.Context, actor *entity.User) (*dto.DoctorDashboardResponse, error) {
	if err := authorize(actor, entity.CapabilityDoctorConsole); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	mine, err := u.appointmentRepo.FindByDoctorID(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}

	unassigned, err := u.appointmentRepo.FindUnassigned(db)
	if err != nil {
		u.log.Warnf("Failed to find unassigned appointments: %+v", err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		MyAppointments:         converter.AppointmentsToResponses(mine),
		UnassignedAppointments: converter.AppointmentsToResponses(unassigned),
	}, nil
}

func (u *doctorConsoleUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id uint, status string) (*dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityDoctorConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.findOwned(tx, actor, id)
	if err != nil {
		return nil, err
	}

	decision, err := parseDecision(status)
	if err != nil {
		return nil, err
	}

	appointment, err := applyDecision(tx, u.log, u.appointmentRepo, current, decision)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %d %s by doctor %d", id, decision, actor.ID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *doctorConsoleUsecase) GetAppointment(ctx context.Context, actor *entity.User, id uint) (*dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityDoctorConsole); err != nil {
		return nil, err
	}

	appointment, err := u.findOwned(u.db.WithContext(ctx), actor, id)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// findOwned loads an appointment and checks it is assigned to the acting doctor.
// Unassigned appointments belong to no one.
func (u *doctorConsoleUsecase) findOwned(db *gorm.DB, actor *entity.User, id uint) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsAssignedTo(actor.ID) {
		return nil, ErrForbidden
	}
	return appointment, nil
}
