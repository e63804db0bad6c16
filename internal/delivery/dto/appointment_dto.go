package dto

// Request DTOs

// BookAppointmentRequest keeps date and time as submitted so a failed parse can re-render them.
type BookAppointmentRequest struct {
	Date             string `form:"date"`
	Time             string `form:"time"`
	Message          string `form:"message" validate:"max=255"`
	PatientFullName  string `form:"full_name" validate:"max=100"`
	PatientInsurance string `form:"insurance" validate:"max=100"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `form:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID               uint   `json:"id"`
	PatientID        uint   `json:"patient_id"`
	PatientName      string `json:"patient_name,omitempty"`
	DoctorID         *uint  `json:"doctor_id,omitempty"`
	DoctorName       string `json:"doctor_name,omitempty"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Status           string `json:"status"`
	Message          string `json:"message,omitempty"`
	PatientFullName  string `json:"patient_full_name,omitempty"`
	PatientInsurance string `json:"patient_insurance,omitempty"`
}

type DoctorDashboardResponse struct {
	MyAppointments         []AppointmentResponse `json:"my_appointments"`
	UnassignedAppointments []AppointmentResponse `json:"unassigned_appointments"`
}
