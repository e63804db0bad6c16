package handler

import (
	"net/http"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/validator"
)

const adminSettings = "/admin/settings"

type SettingsHandler struct {
	settingsUsecase usecase.SiteSettingsUsecase
	validator       *validator.CustomValidator
	view            *view.Renderer
	flash           *flash.Store
}

func NewSettingsHandler(
	settingsUsecase usecase.SiteSettingsUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	flashStore *flash.Store,
) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		validator:       validator,
		view:            renderer,
		flash:           flashStore,
	}
}

// ShowSettings renders the clinic settings form
func (h *SettingsHandler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.Get(r.Context())
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/admin/dashboard")
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/settings.html", "Site Settings", settings)
}

// UpdateSettings saves the clinic name and working hours
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid form submission", adminSettings)
		return
	}

	req := dto.UpdateSiteSettingsRequest{
		ClinicName:   r.PostFormValue("clinic_name"),
		WorkingHours: r.PostFormValue("working_hours"),
	}

	if err := h.validator.Validate(&req); err != nil {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "admin/settings.html", "Site Settings",
			&dto.SiteSettingsResponse{ClinicName: req.ClinicName, WorkingHours: req.WorkingHours},
			notice(h.validator.FirstError(err)))
		return
	}

	if _, err := h.settingsUsecase.Update(r.Context(), currentUser(r), &req); err != nil {
		failUnexpected(w, r, h.flash, err, adminSettings)
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Settings updated successfully!", adminSettings)
}
