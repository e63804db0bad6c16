package usecase

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/infrastructure/database"
	"go-clinic-management/internal/infrastructure/storage"
	"go-clinic-management/internal/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	log       *logrus.Logger
	sessions  *service.SessionService
	images    *recordingStore
	uploadDir string

	auth     AuthUsecase
	booking  PatientBookingUsecase
	doctor   DoctorConsoleUsecase
	admin    AdminUsecase
	settings SiteSettingsUsecase
	content  HomeContentUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "clinic.db"), log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	local, err := storage.NewLocalStore(uploadDir, "/static/uploads")
	require.NoError(t, err)
	images := &recordingStore{ImageStore: local}

	sessions := service.NewSessionService(jwt.NewJWTService("test-secret", time.Hour), service.NewMemorySessionStore(), log)

	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	return &testEnv{
		db:        db,
		log:       log,
		sessions:  sessions,
		images:    images,
		uploadDir: uploadDir,
		auth:      NewAuthUsecase(db, log, userRepo, sessions),
		booking:   NewPatientBookingUsecase(db, log, appointmentRepo),
		doctor:    NewDoctorConsoleUsecase(db, log, appointmentRepo),
		admin:     NewAdminUsecase(db, log, userRepo, appointmentRepo, sessions, service.NewAppointmentExporter()),
		settings:  NewSiteSettingsUsecase(db, log, repository.NewSiteSettingsRepository()),
		content:   NewHomeContentUsecase(db, log, repository.NewHomeContentRepository(), images),
	}
}

// createUser inserts a user directly; the password is always "secret".
func (e *testEnv) createUser(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createAppointment(t *testing.T, patientID uint, doctorID *uint) *entity.Appointment {
	t.Helper()

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Time:      "14:44",
		Status:    entity.AppointmentStatusPending,
	}
	require.NoError(t, e.db.Omit("Patient", "Doctor").Create(appointment).Error)
	return appointment
}

func (e *testEnv) appointmentStatus(t *testing.T, id uint) entity.AppointmentStatus {
	t.Helper()

	var appointment entity.Appointment
	require.NoError(t, e.db.First(&appointment, id).Error)
	return appointment.Status
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()

	var total int64
	require.NoError(t, e.db.Model(model).Count(&total).Error)
	return total
}

// recordingStore counts deletes so tests can tell whether a file operation happened.
type recordingStore struct {
	storage.ImageStore
	deleted []string
}

func (s *recordingStore) Delete(ctx context.Context, name string) error {
	s.deleted = append(s.deleted, name)
	return s.ImageStore.Delete(ctx, name)
}
