package usecase

import (
	"context"
	"testing"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientBookingUsecase_RejectsBadDateAndTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)

	_, err := env.booking.CreateAppointment(ctx, patient, &dto.BookAppointmentRequest{Date: "2026-02-30", Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = env.booking.CreateAppointment(ctx, patient, &dto.BookAppointmentRequest{Date: "2026-02-10", Time: "25:61"})
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = env.booking.CreateAppointment(ctx, patient, &dto.BookAppointmentRequest{Date: "10/02/2026", Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Equal(t, int64(0), env.count(t, &entity.Appointment{}))
}

func TestPatientBookingUsecase_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)
	other := env.createUser(t, "Sam", "sam@example.com", entity.RolePatient)
	admin := env.createUser(t, "Root", "root@example.com", entity.RoleAdmin)

	requests := []dto.BookAppointmentRequest{
		{Date: "2026-01-10", Time: "14:44", Message: "Headache", PatientFullName: "Pat Doe", PatientInsurance: "ACME-1"},
		{Date: "2026-03-01", Time: "09:05", Message: "Follow-up"},
	}

	var ids []uint
	for i := range requests {
		created, err := env.booking.CreateAppointment(ctx, patient, &requests[i])
		require.NoError(t, err)
		assert.Equal(t, "pending", created.Status)
		assert.Nil(t, created.DoctorID)
		ids = append(ids, created.ID)
	}
	_, err := env.booking.CreateAppointment(ctx, other, &dto.BookAppointmentRequest{Date: "2026-04-01", Time: "08:00"})
	require.NoError(t, err)

	mine, err := env.booking.GetMyAppointments(ctx, patient)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for i, appt := range mine {
		assert.Equal(t, ids[i], appt.ID)
		assert.Equal(t, requests[i].Date, appt.Date)
		assert.Equal(t, requests[i].Time, appt.Time)
		assert.Equal(t, requests[i].Message, appt.Message)
		assert.Equal(t, requests[i].PatientFullName, appt.PatientFullName)
		assert.Equal(t, requests[i].PatientInsurance, appt.PatientInsurance)
		assert.Equal(t, patient.ID, appt.PatientID)
	}

	all, err := env.admin.ListAppointments(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	seen := map[uint]int{}
	for _, appt := range all {
		seen[appt.ID]++
	}
	for _, id := range ids {
		assert.Equal(t, 1, seen[id])
	}
	assert.Equal(t, "Pat", all[0].PatientName)
}

func TestPatientBookingUsecase_RequiresPatient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.createUser(t, "Doc", "doc@example.com", entity.RoleDoctor)

	_, err := env.booking.CreateAppointment(ctx, doctor, &dto.BookAppointmentRequest{Date: "2026-01-10", Time: "10:00"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.booking.GetMyAppointments(ctx, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
