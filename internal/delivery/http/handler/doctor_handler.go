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
	"go-clinic-management/pkg/validator"
)

const doctorHome = "/doctor/"

type DoctorHandler struct {
	doctorUsecase usecase.DoctorConsoleUsecase
	validator     *validator.CustomValidator
	view          *view.Renderer
	flash         *flash.Store
}

func NewDoctorHandler(doctorUsecase usecase.DoctorConsoleUsecase, validator *validator.CustomValidator, renderer *view.Renderer, flashStore *flash.Store) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
		view:          renderer,
		flash:         flashStore,
	}
}

// Dashboard shows the doctor's own and the unassigned appointments
func (h *DoctorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.doctorUsecase.Dashboard(r.Context(), currentUser(r))
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/")
		return
	}

	h.view.Render(w, r, http.StatusOK, "doctor/dashboard.html", "Doctor Dashboard", dashboard)
}

// UpdateStatus approves or rejects one of the doctor's pending appointments
func (h *DoctorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", doctorHome)
		return
	}

	req := dto.UpdateAppointmentStatusRequest{Status: strings.TrimSpace(r.PostFormValue("status"))}
	if err := h.validator.Validate(&req); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid status", doctorHome)
		return
	}

	appointment, err := h.doctorUsecase.UpdateStatus(r.Context(), currentUser(r), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", doctorHome)
		case errors.Is(err, usecase.ErrForbidden):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "You cannot modify this appointment", doctorHome)
		case errors.Is(err, usecase.ErrInvalidStatus):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid status", doctorHome)
		case errors.Is(err, usecase.ErrAppointmentDecided):
			flashAndRedirect(w, r, h.flash, flash.CategoryWarning, "Appointment has already been decided", doctorHome)
		default:
			failUnexpected(w, r, h.flash, err, doctorHome)
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess,
		fmt.Sprintf("Appointment %s successfully!", appointment.Status), doctorHome)
}

// ViewAppointment shows a single appointment assigned to the doctor
func (h *DoctorHandler) ViewAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", doctorHome)
		return
	}

	appointment, err := h.doctorUsecase.GetAppointment(r.Context(), currentUser(r), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Appointment not found", doctorHome)
		case errors.Is(err, usecase.ErrForbidden):
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "You cannot view this appointment", doctorHome)
		default:
			failUnexpected(w, r, h.flash, err, doctorHome)
		}
		return
	}

	h.view.Render(w, r, http.StatusOK, "doctor/view_appointment.html", "Appointment", appointment)
}
