package repository

import (
	"go-clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type SiteSettingsRepository interface {
	FirstOrCreate(db *gorm.DB, defaults *entity.SiteSettings) (*entity.SiteSettings, error)
	Update(db *gorm.DB, settings *entity.SiteSettings) error
}
