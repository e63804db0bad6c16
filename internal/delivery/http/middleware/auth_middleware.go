package middleware

import (
	"context"
	"errors"
	"net/http"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/service"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserKey  contextKey = "user"
	TokenKey contextKey = "session_token"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	cookie      *SessionCookie
	flash       *flash.Store
	log         *logrus.Logger
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase, cookie *SessionCookie, flashStore *flash.Store, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		cookie:      cookie,
		flash:       flashStore,
		log:         log,
	}
}

// LoadUser resolves the session cookie to a user. Requests without a live session
// continue anonymously; a stale cookie is cleared.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.cookie.Token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authUsecase.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrSessionInvalid) {
				m.log.Warnf("Failed to resolve session: %+v", err)
			}
			m.cookie.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, TokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin sends anonymous visitors to the login page.
func (m *AuthMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); !ok {
			m.flash.Info(w, r, "Please log in to access this page.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser stores the acting user in ctx.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetTokenFromContext extracts the session token from context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
