package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/response"
	"go-clinic-management/pkg/validator"
)

const (
	adminUsers        = "/admin/users"
	adminAppointments = "/admin/appointments"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
	view         *view.Renderer
	flash        *flash.Store
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator, renderer *view.Renderer, flashStore *flash.Store) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		view:         renderer,
		flash:        flashStore,
	}
}

// Dashboard shows user and appointment counts
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.Dashboard(r.Context(), currentUser(r))
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/")
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/dashboard.html", "Admin Dashboard", stats)
}

// Users lists every account
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUsecase.ListUsers(r.Context(), currentUser(r))
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/admin/dashboard")
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/users.html", "Manage Users", users)
}

// UpdateUserRole changes the role of an account
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "User not found", adminUsers)
		return
	}

	req := dto.UpdateUserRoleRequest{Role: strings.TrimSpace(r.PostFormValue("role"))}
	if err := h.validator.Validate(&req); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid role", adminUsers)
		return
	}

	user, err := h.adminUsecase.UpdateUserRole(r.Context(), currentUser(r), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "User not found", adminUsers)
		case errors.Is(err, usecase.ErrInvalidRole):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid role", adminUsers)
		default:
			failUnexpected(w, r, h.flash, err, adminUsers)
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess,
		fmt.Sprintf("%s role updated to %s", user.Name, user.Role), adminUsers)
}

// DeleteUser removes an account that owns no appointments
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "User not found", adminUsers)
		return
	}

	user, err := h.adminUsecase.DeleteUser(r.Context(), currentUser(r), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "User not found", adminUsers)
		case errors.Is(err, usecase.ErrUserHasAppointments):
			flashAndRedirect(w, r, h.flash, flash.CategoryWarning,
				"Cannot delete a user who still has appointments", adminUsers)
		default:
			failUnexpected(w, r, h.flash, err, adminUsers)
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, fmt.Sprintf("User %s deleted", user.Name), adminUsers)
}

// Appointments lists every appointment
func (h *AdminHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.adminUsecase.ListAppointments(r.Context(), currentUser(r))
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/admin/dashboard")
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/appointments.html", "Manage Appointments", appointments)
}

// UpdateAppointmentStatus decides any pending appointment
func (h *AdminHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", adminAppointments)
		return
	}

	req := dto.UpdateAppointmentStatusRequest{Status: strings.TrimSpace(r.PostFormValue("status"))}
	if err := h.validator.Validate(&req); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid status", adminAppointments)
		return
	}

	appointment, err := h.adminUsecase.UpdateAppointmentStatus(r.Context(), currentUser(r), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", adminAppointments)
		case errors.Is(err, usecase.ErrInvalidStatus):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid status", adminAppointments)
		case errors.Is(err, usecase.ErrAppointmentDecided):
			flashAndRedirect(w, r, h.flash, flash.CategoryWarning, "Appointment has already been decided", adminAppointments)
		default:
			failUnexpected(w, r, h.flash, err, adminAppointments)
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess,
		fmt.Sprintf("Appointment %s successfully!", appointment.Status), adminAppointments)
}

// ExportAppointments downloads all appointments as a spreadsheet
func (h *AdminHandler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminUsecase.ExportAppointments(r.Context(), currentUser(r))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccessDenied):
			response.Forbidden(w, "Access denied")
		default:
			response.InternalServerError(w, "Failed to export appointments")
		}
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="appointments.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
