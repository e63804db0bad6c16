package repository

import (
	"errors"

	"go-clinic-management/internal/domain/entity"
	domainRepo "go-clinic-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type homeContentRepository struct{}

func NewHomeContentRepository() domainRepo.HomeContentRepository {
	return &homeContentRepository{}
}

func (r *homeContentRepository) Create(db *gorm.DB, content *entity.HomeContent) error {
	return db.Create(content).Error
}

func (r *homeContentRepository) FindByID(db *gorm.DB, id uint) (*entity.HomeContent, error) {
	var content entity.HomeContent
	err := db.Where("id = ?", id).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

// FindAllOrdered sorts by the "order" column, which must be quoted on every dialect.
func (r *homeContentRepository) FindAllOrdered(db *gorm.DB) ([]entity.HomeContent, error) {
	var contents []entity.HomeContent
	err := db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("id ASC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *homeContentRepository) Update(db *gorm.DB, content *entity.HomeContent) error {
	return db.Save(content).Error
}

func (r *homeContentRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.HomeContent{}, id).Error
}
