package usecase

import (
	"context"
	"errors"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidImage    = errors.New("image must be a png, jpg, jpeg or gif file")
)

type HomeContentUsecase interface {
	List(ctx context.Context) ([]dto.HomeContentResponse, error)
	Get(ctx context.Context, actor *entity.User, id uint) (*dto.HomeContentResponse, error)
	Create(ctx context.Context, actor *entity.User, req *dto.HomeContentRequest, image *dto.ImageUpload) (*dto.HomeContentResponse, error)
	Update(ctx context.Context, actor *entity.User, id uint, req *dto.HomeContentRequest, image *dto.ImageUpload) (*dto.HomeContentResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uint) error
}

type homeContentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	homeContentRepo repository.HomeContentRepository
	images          storage.ImageStore
}

func NewHomeContentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	homeContentRepo repository.HomeContentRepository,
	images storage.ImageStore,
) HomeContentUsecase {
	return &homeContentUsecase{
		db:              db,
		log:             log,
		homeContentRepo: homeContentRepo,
		images:          images,
	}
}

// List is public: the homepage renders it for anonymous visitors.
func (u *homeContentUsecase) List(ctx context.Context) ([]dto.HomeContentResponse, error) {
	contents, err := u.homeContentRepo.FindAllOrdered(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find home content: %+v", err)
		return nil, err
	}
	return converter.HomeContentsToResponses(contents, u.images.URL), nil
}

func (u *homeContentUsecase) Get(ctx context.Context, actor *entity.User, id uint) (*dto.HomeContentResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	content, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.HomeContentToResponse(content, u.images.URL), nil
}

func (u *homeContentUsecase) Create(ctx context.Context, actor *entity.User, req *dto.HomeContentRequest, image *dto.ImageUpload) (*dto.HomeContentResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	upload, err := prepareImage(image)
	if err != nil {
		return nil, err
	}

	content := &entity.HomeContent{
		SectionType: req.SectionType,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if upload != nil {
		if err := u.saveImage(ctx, upload); err != nil {
			return nil, err
		}
		content.Image = upload.name
	}

	if err := u.homeContentRepo.Create(tx, content); err != nil {
		u.log.Warnf("Failed to create home content: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Home content %d added by admin %d", content.ID, actor.ID)
	return converter.HomeContentToResponse(content, u.images.URL), nil
}

func (u *homeContentUsecase) Update(ctx context.Context, actor *entity.User, id uint, req *dto.HomeContentRequest, image *dto.ImageUpload) (*dto.HomeContentResponse, error) {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	content, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}

	upload, err := prepareImage(image)
	if err != nil {
		return nil, err
	}

	previousImage := content.Image
	content.SectionType = req.SectionType
	content.Title = req.Title
	content.Description = req.Description
	content.Order = req.Order

	if upload != nil {
		if err := u.saveImage(ctx, upload); err != nil {
			return nil, err
		}
		content.Image = upload.name
	}

	if err := u.homeContentRepo.Update(tx, content); err != nil {
		u.log.Warnf("Failed to update home content: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if previousImage != "" && previousImage != content.Image {
		u.removeImage(ctx, previousImage)
	}

	u.log.Infof("Home content %d updated by admin %d", id, actor.ID)
	return converter.HomeContentToResponse(content, u.images.URL), nil
}

// Delete removes the row, then its image file. File errors never fail the delete.
func (u *homeContentUsecase) Delete(ctx context.Context, actor *entity.User, id uint) error {
	if err := authorize(actor, entity.CapabilityAdminConsole); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	content, err := u.find(tx, id)
	if err != nil {
		return err
	}

	if err := u.homeContentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete home content: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if content.HasImage() {
		u.removeImage(ctx, content.Image)
	}

	u.log.Infof("Home content %d deleted by admin %d", id, actor.ID)
	return nil
}

func (u *homeContentUsecase) find(db *gorm.DB, id uint) (*entity.HomeContent, error) {
	content, err := u.homeContentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find home content: %+v", err)
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}
	return content, nil
}

type preparedImage struct {
	name        string
	contentType string
	data        []byte
}

// prepareImage validates an optional upload. A missing file means "keep what is there".
func prepareImage(image *dto.ImageUpload) (*preparedImage, error) {
	if image == nil || image.Filename == "" {
		return nil, nil
	}

	name := storage.SecureFilename(image.Filename)
	if name == "" {
		return nil, ErrInvalidImage
	}

	contentType, err := storage.DetectImage(name, image.Data)
	if err != nil {
		return nil, ErrInvalidImage
	}

	return &preparedImage{name: name, contentType: contentType, data: image.Data}, nil
}

func (u *homeContentUsecase) saveImage(ctx context.Context, image *preparedImage) error {
	if err := u.images.Save(ctx, image.name, image.data, image.contentType); err != nil {
		u.log.Warnf("Failed to store image %s: %+v", image.name, err)
		return err
	}
	return nil
}

func (u *homeContentUsecase) removeImage(ctx context.Context, name string) {
	if err := u.images.Delete(ctx, name); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		u.log.Warnf("Failed to remove image %s: %+v", name, err)
	}
}
