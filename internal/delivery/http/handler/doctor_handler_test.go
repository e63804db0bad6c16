package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go-clinic-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

const doctorStatusPattern = "/doctor/appointments/update_status/{id}"

func statusRequest(prefix string, id uint, status string) *http.Request {
	return formRequest(http.MethodPost, fmt.Sprintf("%s/%d", prefix, id), url.Values{"status": {status}})
}

func TestDoctorHandler_UpdateStatusRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)
	doctor := env.createUser(t, "Dr Who", "who@example.com", entity.RoleDoctor)
	other := env.createUser(t, "Dr Strange", "strange@example.com", entity.RoleDoctor)

	assigned := env.createAppointment(t, patient.ID, &other.ID)
	unassigned := env.createAppointment(t, patient.ID, nil)

	for _, appointment := range []*entity.Appointment{assigned, unassigned} {
		rec := serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
			statusRequest("/doctor/appointments/update_status", appointment.ID, "approved"), doctor)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/doctor/", rec.Header().Get("Location"))
		assert.Equal(t, []string{"You cannot modify this appointment"}, env.flashTexts(rec))
		assert.Equal(t, entity.AppointmentStatusPending, env.appointmentStatus(t, appointment.ID))
	}
}

func TestDoctorHandler_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)
	doctor := env.createUser(t, "Dr Who", "who@example.com", entity.RoleDoctor)
	appointment := env.createAppointment(t, patient.ID, &doctor.ID)

	rec := serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
		statusRequest("/doctor/appointments/update_status", appointment.ID, "cancelled"), doctor)
	assert.Equal(t, []string{"Invalid status"}, env.flashTexts(rec))
	assert.Equal(t, entity.AppointmentStatusPending, env.appointmentStatus(t, appointment.ID))

	rec = serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
		formRequest(http.MethodPost, fmt.Sprintf("/doctor/appointments/update_status/%d", appointment.ID), url.Values{}), doctor)
	assert.Equal(t, "/doctor/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Invalid status"}, env.flashTexts(rec))
	assert.Equal(t, entity.AppointmentStatusPending, env.appointmentStatus(t, appointment.ID))

	rec = serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
		statusRequest("/doctor/appointments/update_status", appointment.ID, "rejected"), doctor)
	assert.Equal(t, []string{"Appointment rejected successfully!"}, env.flashTexts(rec))
	assert.Equal(t, entity.AppointmentStatusRejected, env.appointmentStatus(t, appointment.ID))

	rec = serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
		statusRequest("/doctor/appointments/update_status", appointment.ID, "approved"), doctor)
	assert.Equal(t, []string{"Appointment has already been decided"}, env.flashTexts(rec))
	assert.Equal(t, entity.AppointmentStatusRejected, env.appointmentStatus(t, appointment.ID))

	rec = serve(env.doctorHandler.UpdateStatus, doctorStatusPattern,
		statusRequest("/doctor/appointments/update_status", 999, "approved"), doctor)
	assert.Equal(t, []string{"Appointment not found"}, env.flashTexts(rec))
}

func TestDoctorHandler_DashboardAndView(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)
	doctor := env.createUser(t, "Dr Who", "who@example.com", entity.RoleDoctor)
	other := env.createUser(t, "Dr Strange", "strange@example.com", entity.RoleDoctor)

	mine := env.createAppointment(t, patient.ID, &doctor.ID)
	theirs := env.createAppointment(t, patient.ID, &other.ID)

	rec := serve(env.doctorHandler.Dashboard, "/doctor/", httptest.NewRequest(http.MethodGet, "/doctor/", nil), doctor)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("/doctor/appointments/%d", mine.ID))

	rec = serve(env.doctorHandler.ViewAppointment, "/doctor/appointments/{id}",
		httptest.NewRequest(http.MethodGet, fmt.Sprintf("/doctor/appointments/%d", mine.ID), nil), doctor)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pat")

	rec = serve(env.doctorHandler.ViewAppointment, "/doctor/appointments/{id}",
		httptest.NewRequest(http.MethodGet, fmt.Sprintf("/doctor/appointments/%d", theirs.ID), nil), doctor)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"You cannot view this appointment"}, env.flashTexts(rec))
}
