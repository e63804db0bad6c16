package repository

import (
	"go-clinic-management/internal/domain/entity"
	domainRepo "go-clinic-management/internal/domain/repository"

	"gorm.io/gorm"
)

type siteSettingsRepository struct{}

func NewSiteSettingsRepository() domainRepo.SiteSettingsRepository {
	return &siteSettingsRepository{}
}

// FirstOrCreate returns the oldest settings row, inserting defaults when the table is empty.
func (r *siteSettingsRepository) FirstOrCreate(db *gorm.DB, defaults *entity.SiteSettings) (*entity.SiteSettings, error) {
	var settings entity.SiteSettings
	err := db.Order("id ASC").
		Attrs(entity.SiteSettings{ClinicName: defaults.ClinicName, WorkingHours: defaults.WorkingHours}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *siteSettingsRepository) Update(db *gorm.DB, settings *entity.SiteSettings) error {
	return db.Model(settings).Updates(map[string]interface{}{
		"clinic_name":   settings.ClinicName,
		"working_hours": settings.WorkingHours,
	}).Error
}
