package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Can(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RolePatient, CapabilityBook, true},
		{RolePatient, CapabilityDoctorConsole, false},
		{RolePatient, CapabilityAdminConsole, false},
		{RoleDoctor, CapabilityDoctorConsole, true},
		{RoleDoctor, CapabilityBook, false},
		{RoleDoctor, CapabilityAdminConsole, false},
		{RoleAdmin, CapabilityAdminConsole, true},
		{RoleAdmin, CapabilityDoctorConsole, false},
		{RoleSuperAdmin, CapabilityAdminConsole, true},
		{Role("nurse"), CapabilityBook, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.cap))
		})
	}
}

func TestRole_AssignmentRules(t *testing.T) {
	assert.True(t, RoleAdmin.IsAssignable())
	assert.False(t, RoleSuperAdmin.IsAssignable())
	assert.False(t, Role("").IsAssignable())

	assert.True(t, RolePatient.IsSelfRegistrable())
	assert.True(t, RoleDoctor.IsSelfRegistrable())
	assert.False(t, RoleAdmin.IsSelfRegistrable())
}

func TestUser_CanAnonymous(t *testing.T) {
	var anonymous *User
	assert.False(t, anonymous.Can(CapabilityBook))
	assert.True(t, (&User{Role: RolePatient}).Can(CapabilityBook))
}

func TestAppointment_IsAssignedTo(t *testing.T) {
	doctorID := uint(3)
	assigned := &Appointment{DoctorID: &doctorID}
	unassigned := &Appointment{}

	assert.True(t, assigned.IsAssignedTo(3))
	assert.False(t, assigned.IsAssignedTo(2))
	assert.False(t, unassigned.IsAssignedTo(2))
	assert.True(t, AppointmentStatusApproved.IsDecision())
	assert.False(t, AppointmentStatusPending.IsDecision())
}
