package dto

type AdminDashboardResponse struct {
	Users        int64 `json:"users"`
	Appointments int64 `json:"appointments"`
	Pending      int64 `json:"pending"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
}

type UpdateSiteSettingsRequest struct {
	ClinicName   string `form:"clinic_name" validate:"required,max=100"`
	WorkingHours string `form:"working_hours" validate:"required,max=100"`
}

type SiteSettingsResponse struct {
	ClinicName   string `json:"clinic_name"`
	WorkingHours string `json:"working_hours"`
}
