package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/infrastructure/database"
	"go-clinic-management/internal/infrastructure/storage"
	"go-clinic-management/internal/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/jwt"
	"go-clinic-management/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testMaxUpload = 2 << 20

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testEnv struct {
	db        *gorm.DB
	flash     *flash.Store
	uploadDir string

	auth           usecase.AuthUsecase
	authMiddleware *middleware.AuthMiddleware

	authHandler        *AuthHandler
	homeHandler        *HomeHandler
	bookingHandler     *BookingHandler
	doctorHandler      *DoctorHandler
	adminHandler       *AdminHandler
	settingsHandler    *SettingsHandler
	homeContentHandler *HomeContentHandler
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
	images, err := storage.NewLocalStore(uploadDir, "/static/uploads")
	require.NoError(t, err)

	sessions := service.NewSessionService(jwt.NewJWTService("test-secret", time.Hour), service.NewMemorySessionStore(), log)
	flashStore := flash.NewStore("test-secret", false)
	v := validator.NewValidator()

	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	auth := usecase.NewAuthUsecase(db, log, userRepo, sessions)
	settings := usecase.NewSiteSettingsUsecase(db, log, repository.NewSiteSettingsRepository())
	content := usecase.NewHomeContentUsecase(db, log, repository.NewHomeContentRepository(), images)

	renderer, err := view.NewRenderer(flashStore, settings, log)
	require.NoError(t, err)

	cookie := middleware.NewSessionCookie("clinic_session", false)

	return &testEnv{
		db:             db,
		flash:          flashStore,
		uploadDir:      uploadDir,
		auth:           auth,
		authMiddleware: middleware.NewAuthMiddleware(auth, cookie, flashStore, log),
		authHandler:    NewAuthHandler(auth, v, renderer, flashStore, cookie, time.Hour),
		homeHandler:    NewHomeHandler(content, renderer),
		bookingHandler: NewBookingHandler(usecase.NewPatientBookingUsecase(db, log, appointmentRepo), v, renderer, flashStore),
		doctorHandler:  NewDoctorHandler(usecase.NewDoctorConsoleUsecase(db, log, appointmentRepo), v, renderer, flashStore),
		adminHandler: NewAdminHandler(
			usecase.NewAdminUsecase(db, log, userRepo, appointmentRepo, sessions, service.NewAppointmentExporter()),
			v, renderer, flashStore,
		),
		settingsHandler:    NewSettingsHandler(settings, v, renderer, flashStore),
		homeContentHandler: NewHomeContentHandler(content, v, renderer, flashStore, testMaxUpload),
	}
}

// serve routes req through a router holding only pattern, acting as user when non-nil.
func serve(h http.HandlerFunc, pattern string, req *http.Request, user *entity.User) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, h)

	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target string, values url.Values, fileName string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// flashes decodes the notices a response queued for the next page.
func (e *testEnv) flashes(rec *httptest.ResponseRecorder) []flash.Message {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return e.flash.Consume(httptest.NewRecorder(), req)
}

func (e *testEnv) flashTexts(rec *httptest.ResponseRecorder) []string {
	var texts []string
	for _, m := range e.flashes(rec) {
		texts = append(texts, m.Text)
	}
	return texts
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

func (e *testEnv) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.uploadDir, name))
	return err == nil
}
