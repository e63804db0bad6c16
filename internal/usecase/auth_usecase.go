package usecase

import (
	"context"
	"errors"
	"strings"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	CreateSuperuser(ctx context.Context, req *dto.CreateSuperuserRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	sessions *service.SessionService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessions *service.SessionService,
) AuthUsecase {
	return &authUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		sessions: sessions,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RolePatient
	}
	if !role.IsSelfRegistrable() {
		return nil, ErrInvalidRole
	}

	return u.createUser(ctx, req.Name, req.Email, req.Password, role)
}

func (u *authUsecase) CreateSuperuser(ctx context.Context, req *dto.CreateSuperuserRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RoleAdmin
	}
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	user, err := u.createUser(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Administrator %s created with role %s", user.Email, user.Role)
	return user, nil
}

func (u *authUsecase) createUser(ctx context.Context, name, email, password string, role entity.Role) (*dto.UserResponse, error) {
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	email = normalizeEmail(email)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	// The unique index still catches a concurrent registration that passed the check above.
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, token string) error {
	return u.sessions.End(ctx, token)
}

// Authenticate resolves a session token to the user who owns it.
// A deleted user or an ended session yields service.ErrSessionInvalid.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := u.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find session user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, service.ErrSessionInvalid
	}

	return user, nil
}
