package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/flash"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	users map[string]*entity.User
}

func (s *stubAuth) Register(context.Context, *dto.RegisterRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, nil
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entity.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, service.ErrSessionInvalid
}

func (s *stubAuth) CreateSuperuser(context.Context, *dto.CreateSuperuserRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func newTestAuthMiddleware() (*AuthMiddleware, *flash.Store) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	flashStore := flash.NewStore("secret", false)
	auth := &stubAuth{users: map[string]*entity.User{
		"patient-token": {ID: 1, Name: "Pat", Role: entity.RolePatient},
		"admin-token":   {ID: 2, Name: "Root", Role: entity.RoleAdmin},
	}}
	return NewAuthMiddleware(auth, NewSessionCookie("clinic_session", false), flashStore, log), flashStore
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := GetUserFromContext(r.Context())
	if user != nil {
		w.Write([]byte(user.Name))
		return
	}
	w.Write([]byte("anonymous"))
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "clinic_session", Value: token})
	}
	return req
}

func TestAuthMiddleware_LoadUser(t *testing.T) {
	m, _ := newTestAuthMiddleware()
	handler := m.LoadUser(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken("patient-token"))
	assert.Equal(t, "Pat", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(""))
	assert.Equal(t, "anonymous", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken("revoked"))
	assert.Equal(t, "anonymous", rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "clinic_session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRequireCapability(t *testing.T) {
	m, flashStore := newTestAuthMiddleware()
	handler := m.LoadUser(RequireCapability(flashStore, entity.CapabilityAdminConsole)(http.HandlerFunc(okHandler)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken("admin-token"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Root", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken("patient-token"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(""))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireLogin(t *testing.T) {
	m, _ := newTestAuthMiddleware()
	handler := m.LoadUser(m.RequireLogin(http.HandlerFunc(okHandler)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(""))
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken("patient-token"))
	assert.Equal(t, "Pat", rec.Body.String())
}

func TestSessionCookie(t *testing.T) {
	cookie := NewSessionCookie("clinic_session", true)

	rec := httptest.NewRecorder()
	cookie.Set(rec, "token", time.Hour)
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, 3600, set[0].MaxAge)
	assert.True(t, set[0].Secure)
	assert.True(t, set[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(set[0])
	assert.Equal(t, "token", cookie.Token(req))
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "GET", entry.Data["method"])
}

func TestLimitRequestBody(t *testing.T) {
	flashStore := flash.NewStore("secret", false)
	var read int
	handler := LimitRequestBody(flashStore, 8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		read = len(body)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/home-content/add", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/home-content/add", rec.Header().Get("Location"))
	assert.Zero(t, read)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, read)
}

func TestFormPage(t *testing.T) {
	cases := []struct {
		path    string
		referer string
		want    string
	}{
		{"/login", "", "/login"},
		{"/admin/home-content/edit/3", "", "/admin/home-content/edit/3"},
		{"/admin/users/delete/2", "", "/admin/users"},
		{"/admin/users/update/2", "", "/admin/users"},
		{"/admin/appointments/update_status/7", "", "/admin/appointments"},
		{"/admin/home-content/delete/4", "", "/admin/home-content"},
		{"/doctor/appointments/update_status/7", "", "/doctor/"},
		{"/doctor/appointments/update_status/7", "http://example.com/doctor/appointments/7", "/doctor/appointments/7"},
		{"/admin/users/delete/2", "http://example.com/admin/users/delete/2", "/admin/users"},
		{"/admin/users/delete/2", "https://attacker.test/admin/settings", "/admin/users"},
		{"/admin/users/delete/2", "/relative", "/admin/users"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, nil)
		if tc.referer != "" {
			req.Header.Set("Referer", tc.referer)
		}
		assert.Equal(t, tc.want, FormPage(req), "%s from %q", tc.path, tc.referer)
	}
}

func TestRejectOversizedBody(t *testing.T) {
	flashStore := flash.NewStore("secret", false)
	var rejected bool
	handler := LimitRequestBody(flashStore, 8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.ReadAll(r.Body)
		rejected = RejectOversizedBody(w, r, flashStore)
		if !rejected {
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/users/delete/2", strings.NewReader("0123456789"))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, rejected)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
	require.Len(t, rec.Result().Cookies(), 1)

	req = httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader("small"))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, rejected)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
