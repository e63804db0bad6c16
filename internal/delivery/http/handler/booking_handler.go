package handler

import (
	"errors"
	"net/http"
	"strings"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/validator"
)

type BookingHandler struct {
	bookingUsecase usecase.PatientBookingUsecase
	validator      *validator.CustomValidator
	view           *view.Renderer
	flash          *flash.Store
}

func NewBookingHandler(
	bookingUsecase usecase.PatientBookingUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	flashStore *flash.Store,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
		view:           renderer,
		flash:          flashStore,
	}
}

// ShowBook renders the appointment request form
func (h *BookingHandler) ShowBook(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "book.html", "Book Appointment", &dto.BookAppointmentRequest{})
}

// Book creates a pending appointment for the current patient
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid form submission", "/book")
		return
	}

	req := dto.BookAppointmentRequest{
		Date:             strings.TrimSpace(r.PostFormValue("date")),
		Time:             strings.TrimSpace(r.PostFormValue("time")),
		Message:          r.PostFormValue("message"),
		PatientFullName:  strings.TrimSpace(r.PostFormValue("full_name")),
		PatientInsurance: strings.TrimSpace(r.PostFormValue("insurance")),
	}

	if err := h.validator.Validate(&req); err != nil {
		h.rejectForm(w, r, &req, h.validator.FirstError(err))
		return
	}

	if _, err := h.bookingUsecase.CreateAppointment(r.Context(), currentUser(r), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			h.rejectForm(w, r, &req, "Invalid date format. Use YYYY-MM-DD.")
		case errors.Is(err, usecase.ErrInvalidTime):
			h.rejectForm(w, r, &req, "Invalid time format. Use HH:MM (24-hour).")
		default:
			failUnexpected(w, r, h.flash, err, "/book")
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Appointment requested successfully!", "/book")
}

// MyAppointments lists the current patient's appointments
func (h *BookingHandler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookingUsecase.GetMyAppointments(r.Context(), currentUser(r))
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/")
		return
	}

	h.view.Render(w, r, http.StatusOK, "appointments.html", "My Appointments", appointments)
}

func (h *BookingHandler) rejectForm(w http.ResponseWriter, r *http.Request, req *dto.BookAppointmentRequest, message string) {
	h.view.Render(w, r, http.StatusUnprocessableEntity, "book.html", "Book Appointment", req, notice(message))
}
