package usecase

import (
	"testing"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDecision_StaleReadLoses(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "Pat", "pat@example.com", entity.RolePatient)
	appointment := env.createAppointment(t, patient.ID, nil)
	repo := repository.NewAppointmentRepository()

	stale, err := repo.FindByID(env.db, appointment.ID)
	require.NoError(t, err)
	require.True(t, stale.IsPending())

	decided, err := applyDecision(env.db, env.log, repo, stale, entity.AppointmentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusApproved, decided.Status)

	// A second decision made from the same earlier read must not overwrite the first.
	_, err = applyDecision(env.db, env.log, repo, stale, entity.AppointmentStatusRejected)
	assert.ErrorIs(t, err, ErrAppointmentDecided)
	assert.Equal(t, entity.AppointmentStatusApproved, env.appointmentStatus(t, appointment.ID))

	_, err = applyDecision(env.db, env.log, repo, decided, entity.AppointmentStatusRejected)
	assert.ErrorIs(t, err, ErrAppointmentDecided)
}

func TestParseDecision(t *testing.T) {
	for _, status := range []string{"approved", "rejected"} {
		decision, err := parseDecision(status)
		require.NoError(t, err)
		assert.Equal(t, entity.AppointmentStatus(status), decision)
	}

	for _, status := range []string{"", "pending", "cancelled", "APPROVED"} {
		_, err := parseDecision(status)
		assert.ErrorIs(t, err, ErrInvalidStatus, status)
	}
}
