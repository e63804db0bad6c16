package entity

const (
	DefaultClinicName   = "My Clinic"
	DefaultWorkingHours = "9AM - 5PM"
)

// SiteSettings is the single row of clinic-wide settings
type SiteSettings struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicName   string `gorm:"type:varchar(100)" json:"clinic_name"`
	WorkingHours string `gorm:"type:varchar(100)" json:"working_hours"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
