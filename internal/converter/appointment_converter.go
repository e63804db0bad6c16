package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Names are filled only when the relation was preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:               appointment.ID,
		PatientID:        appointment.PatientID,
		DoctorID:         appointment.DoctorID,
		Date:             appointment.Date.Format(dateLayout),
		Time:             appointment.Time,
		Status:           string(appointment.Status),
		Message:          appointment.Message,
		PatientFullName:  appointment.PatientFullName,
		PatientInsurance: appointment.PatientInsurance,
	}

	if appointment.Patient.ID != 0 {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
