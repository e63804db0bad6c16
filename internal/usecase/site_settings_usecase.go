package usecase

import (
	"context"
	"strings"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SiteSettingsUsecase interface {
	Get(ctx context.Context) (*dto.SiteSettingsResponse, error)
	Update(ctx context.Context, actor *entity.User, req *dto.UpdateSiteSettingsRequest) (*dto.SiteSettingsResponse, error)
}

type siteSettingsUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	siteSettingsRepo repository.SiteSettingsRepository
}

func NewSiteSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	siteSettingsRepo repository.SiteSettingsRepository,
) SiteSettingsUsecase {
	return &siteSettingsUsecase{
		db:               db,
		log:              log,
		siteSettingsRepo: siteSettingsRepo,
	}
}

var defaultSiteSettings = &entity.SiteSettings{
	ClinicName:   entity.DefaultClinicName,
	WorkingHours: entity.DefaultWorkingHours,
}

// Get returns the settings row, creating it with defaults on first access.
func (u *siteSettingsUsecase) Get(ctx context.Context) (*dto.SiteSettingsResponse, error) {
	settings, err := u.siteSettingsRepo.FirstOrCreate(u.db.WithContext(ctx), defaultSiteSettings)
	if err != nil {
		u.log.Warnf("Failed to load site settings: %+v", err)
		return nil, err
	}
	return converter.SiteSettingsToResponse(settings), nil
}

func (u *siteSettingsUsecase) Update(ctx context.Context, actor *entity.User, req *dto.UpdateSiteSettingsRequest) (*dto.SiteSettingsResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	settings, err := u.siteSettingsRepo.FirstOrCreate(tx, defaultSiteSettings)
	if err != nil {
		u.log.Warnf("Failed to load site settings: %+v", err)
		return nil, err
	}

	settings.ClinicName = strings.TrimSpace(req.ClinicName)
	settings.WorkingHours = strings.TrimSpace(req.WorkingHours)

	if err := u.siteSettingsRepo.Update(tx, settings); err != nil {
		u.log.Warnf("Failed to update site settings: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Site settings updated by admin %d", actor.ID)
	return converter.SiteSettingsToResponse(settings), nil
}
