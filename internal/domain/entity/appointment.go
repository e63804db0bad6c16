package entity

import "time"

// AppointmentStatus represents the lifecycle of a booking request
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
)

// IsDecision reports whether the status is one a doctor or admin may set.
func (s AppointmentStatus) IsDecision() bool {
	return s == AppointmentStatusApproved || s == AppointmentStatusRejected
}

// Appointment is a patient's booking request, optionally assigned to a doctor
type Appointment struct {
	ID               uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID         *uint             `gorm:"index" json:"doctor_id,omitempty"`
	Date             time.Time         `gorm:"type:date;not null" json:"date"`
	Time             string            `gorm:"type:varchar(5)" json:"time"`
	Status           AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message          string            `gorm:"type:varchar(255)" json:"message,omitempty"`
	PatientFullName  string            `gorm:"type:varchar(100)" json:"patient_full_name,omitempty"`
	PatientInsurance string            `gorm:"type:varchar(100)" json:"patient_insurance,omitempty"`

	// Relationships
	Patient User  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment still awaits a decision
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsAssignedTo checks if the appointment is assigned to the given doctor
func (a *Appointment) IsAssignedTo(doctorID uint) bool {
	return a.DoctorID != nil && *a.DoctorID == doctorID
}
