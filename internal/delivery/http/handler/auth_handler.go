package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	view        *view.Renderer
	flash       *flash.Store
	cookie      *middleware.SessionCookie
	sessionTTL  time.Duration
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	flashStore *flash.Store,
	cookie *middleware.SessionCookie,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		view:        renderer,
		flash:       flashStore,
		cookie:      cookie,
		sessionTTL:  sessionTTL,
	}
}

// ShowRegister renders the sign-up form
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "register.html", "Register", &dto.RegisterRequest{})
}

// Register creates a patient or doctor account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid form submission", "/register")
		return
	}

	req := dto.RegisterRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	if err := h.validator.Validate(&req); err != nil {
		req.Password = ""
		h.view.Render(w, r, http.StatusUnprocessableEntity, "register.html", "Register", &req,
			notice(h.validator.FirstError(err)))
		return
	}

	if _, err := h.authUsecase.Register(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Email already exists", "/register")
		case errors.Is(err, usecase.ErrInvalidRole):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid role", "/register")
		case errors.Is(err, usecase.ErrPasswordTooShort):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Password must be at least 6 characters", "/register")
		default:
			failUnexpected(w, r, h.flash, err, "/register")
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Account created! Please log in.", "/login")
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "login.html", "Login", &dto.LoginRequest{})
}

// Login starts a session and stores its token in the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid form submission", "/login")
		return
	}

	req := dto.LoginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		req.Password = ""
		h.view.Render(w, r, http.StatusUnprocessableEntity, "login.html", "Login", &req,
			notice(h.validator.FirstError(err)))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid credentials", "/login")
		default:
			failUnexpected(w, r, h.flash, err, "/login")
		}
		return
	}

	h.cookie.Set(w, result.Token, h.sessionTTL)
	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Logged in successfully", "/")
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetTokenFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), token); err != nil {
		failUnexpected(w, r, h.flash, err, "/")
		return
	}

	h.cookie.Clear(w)
	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Logged out successfully", "/")
}
