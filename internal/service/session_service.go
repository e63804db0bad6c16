package service

import (
	"context"
	"errors"
	"time"

	"go-clinic-management/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var ErrSessionInvalid = errors.New("session is invalid or has ended")

// SessionService issues and checks login sessions: a signed token for the cookie plus a
// server-side record that logout and account deletion can revoke.
type SessionService struct {
	jwtService *jwt.JWTService
	store      SessionStore
	log        *logrus.Logger
}

func NewSessionService(jwtService *jwt.JWTService, store SessionStore, log *logrus.Logger) *SessionService {
	return &SessionService{
		jwtService: jwtService,
		store:      store,
		log:        log,
	}
}

// Start opens a session for the user and returns the token to put in the cookie.
func (s *SessionService) Start(ctx context.Context, userID uint) (string, error) {
	token, sessionID, err := s.jwtService.GenerateSessionToken(userID)
	if err != nil {
		s.log.Warnf("Failed to sign session token: %+v", err)
		return "", err
	}

	if err := s.store.Save(ctx, userID, sessionID, s.jwtService.GetExpiry()); err != nil {
		s.log.Warnf("Failed to store session for user %d: %+v", userID, err)
		return "", err
	}

	return token, nil
}

// Resolve returns the claims of a live session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	live, err := s.store.Exists(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		s.log.Warnf("Failed to look up session: %+v", err)
		return nil, err
	}
	if !live {
		return nil, ErrSessionInvalid
	}

	return claims, nil
}

// End revokes the session carried by token. Unparseable tokens have nothing to revoke.
func (s *SessionService) End(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	if err := s.store.Delete(ctx, claims.UserID, claims.SessionID); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

// RevokeAll ends every session of the user.
func (s *SessionService) RevokeAll(ctx context.Context, userID uint) error {
	if err := s.store.DeleteAll(ctx, userID); err != nil {
		s.log.Warnf("Failed to revoke sessions for user %d: %+v", userID, err)
		return err
	}
	return nil
}

func (s *SessionService) TTL() time.Duration {
	return s.jwtService.GetExpiry()
}
