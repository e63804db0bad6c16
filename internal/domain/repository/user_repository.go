package repository

import (
	"go-clinic-management/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	UpdateRole(db *gorm.DB, id uint, role entity.Role) error
	Delete(db *gorm.DB, id uint) error
	Count(db *gorm.DB) (int64, error)
}
