package usecase

import (
	"context"
	"errors"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUserHasAppointments = errors.New("user still has appointments")

type AdminUsecase interface {
	Dashboard(ctx context.Context, actor *entity.User) (*dto.AdminDashboardResponse, error)
	ListUsers(ctx context.Context, actor *entity.User) ([]dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, actor *entity.User, id uint, role string) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor *entity.User, id uint) (*dto.UserResponse, error)
	ListAppointments(ctx context.Context, actor *entity.User) ([]dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, actor *entity.User, id uint, status string) (*dto.AppointmentResponse, error)
	ExportAppointments(ctx context.Context, actor *entity.User) ([]byte, error)
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	sessions        *service.SessionService
	exporter        *service.AppointmentExporter
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	sessions *service.SessionService,
	exporter *service.AppointmentExporter,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		sessions:        sessions,
		exporter:        exporter,
	}
}

func (u *adminUsecase) Dashboard(ctx context.Context, actor *entity.User) (*dto.AdminDashboardResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	users, err := u.userRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	byStatus, err := u.appointmentRepo.CountByStatus(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments by status: %+v", err)
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		Users:        users,
		Appointments: appointments,
		Pending:      byStatus[entity.AppointmentStatusPending],
		Approved:     byStatus[entity.AppointmentStatusApproved],
		Rejected:     byStatus[entity.AppointmentStatusRejected],
	}, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, actor *entity.User) ([]dto.UserResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	return converter.UsersToResponses(users), nil
}

func (u *adminUsecase) UpdateUserRole(ctx context.Context, actor *entity.User, id uint, role string) (*dto.UserResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newRole := entity.Role(role)
	if !newRole.IsAssignable() {
		return nil, ErrInvalidRole
	}

	if err := u.userRepo.UpdateRole(tx, id, newRole); err != nil {
		u.log.Warnf("Failed to update user role: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.Role = newRole
	u.log.Infof("User %d role changed to %s by admin %d", id, newRole, actor.ID)
	return converter.UserToResponse(user), nil
}

// DeleteUser removes the account and ends its sessions.
// Appointments are not cascaded; a user who still owns any is refused.
func (u *adminUsecase) DeleteUser(ctx context.Context, actor *entity.User, id uint) (*dto.UserResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.userRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrUserHasAppointments
		}
		u.log.Warnf("Failed to delete user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isForeignKeyError(err) {
			return nil, ErrUserHasAppointments
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.sessions.RevokeAll(ctx, id)

	u.log.Infof("User %d deleted by admin %d", id, actor.ID)
	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) ListAppointments(ctx context.Context, actor *entity.User) ([]dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// UpdateAppointmentStatus decides any pending appointment regardless of the assigned doctor.
func (u *adminUsecase) UpdateAppointmentStatus(ctx context.Context, actor *entity.User, id uint, status string) (*dto.AppointmentResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	decision, err := parseDecision(status)
	if err != nil {
		return nil, err
	}

	appointment, err := applyDecision(tx, u.log, u.appointmentRepo, existing, decision)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %d %s by admin %d", id, decision, actor.ID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *adminUsecase) ExportAppointments(ctx context.Context, actor *entity.User) ([]byte, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	data, err := u.exporter.Export(appointments)
	if err != nil {
		u.log.Warnf("Failed to export appointments: %+v", err)
		return nil, err
	}
	return data, nil
}
