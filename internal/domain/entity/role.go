package entity

// Role names the kind of identity a user account represents.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Capability is an operation group guarded by role.
type Capability string

const (
	CapabilityBook          Capability = "book"
	CapabilityDoctorConsole Capability = "doctor_console"
	CapabilityAdminConsole  Capability = "admin_console"
)

var roleCapabilities = map[Role][]Capability{
	RolePatient:    {CapabilityBook},
	RoleDoctor:     {CapabilityDoctorConsole},
	RoleAdmin:      {CapabilityAdminConsole},
	RoleSuperAdmin: {CapabilityAdminConsole},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// IsAssignable reports whether an administrator may give this role to a user.
// superadmin is only granted through the command line.
func (r Role) IsAssignable() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// IsSelfRegistrable reports whether the role may be chosen on the public sign-up form.
func (r Role) IsSelfRegistrable() bool {
	return r == RolePatient || r == RoleDoctor
}
