package service

import (
	"bytes"
	"fmt"

	"go-clinic-management/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const appointmentSheet = "Appointments"

var appointmentExportHeader = []string{
	"ID", "Patient", "Patient Email", "Full Name", "Insurance", "Doctor", "Date", "Time", "Status", "Message",
}

var appointmentColumnWidths = []float64{8, 22, 28, 22, 20, 22, 12, 8, 12, 40}

// AppointmentExporter renders appointments as an .xlsx workbook.
type AppointmentExporter struct{}

func NewAppointmentExporter() *AppointmentExporter {
	return &AppointmentExporter{}
}

func (e *AppointmentExporter) Export(appointments []entity.Appointment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(appointmentSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range appointmentExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(appointmentSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(appointmentSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(appointmentSheet, name, name, appointmentColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, appt := range appointments {
		doctor := ""
		if appt.Doctor != nil {
			doctor = appt.Doctor.Name
		}
		values := []interface{}{
			appt.ID,
			appt.Patient.Name,
			appt.Patient.Email,
			appt.PatientFullName,
			appt.PatientInsurance,
			doctor,
			appt.Date.Format("2006-01-02"),
			appt.Time,
			string(appt.Status),
			appt.Message,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(appointmentSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(appointmentSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
