package repository

import (
	"go-clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type HomeContentRepository interface {
	Create(db *gorm.DB, content *entity.HomeContent) error
	FindByID(db *gorm.DB, id uint) (*entity.HomeContent, error)
	FindAllOrdered(db *gorm.DB) ([]entity.HomeContent, error)
	Update(db *gorm.DB, content *entity.HomeContent) error
	Delete(db *gorm.DB, id uint) error
}
