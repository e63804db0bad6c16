package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

// HomeContentToResponse converts a HomeContent entity; imageURL maps a stored file name to its public URL.
func HomeContentToResponse(content *entity.HomeContent, imageURL func(string) string) *dto.HomeContentResponse {
	if content == nil {
		return nil
	}

	response := &dto.HomeContentResponse{
		ID:          content.ID,
		SectionType: content.SectionType,
		Title:       content.Title,
		Description: content.Description,
		Image:       content.Image,
		Order:       content.Order,
		CreatedAt:   content.CreatedAt,
	}
	if content.HasImage() && imageURL != nil {
		response.ImageURL = imageURL(content.Image)
	}

	return response
}

func HomeContentsToResponses(contents []entity.HomeContent, imageURL func(string) string) []dto.HomeContentResponse {
	responses := make([]dto.HomeContentResponse, len(contents))
	for i := range contents {
		responses[i] = *HomeContentToResponse(&contents[i], imageURL)
	}
	return responses
}

func SiteSettingsToResponse(settings *entity.SiteSettings) *dto.SiteSettingsResponse {
	if settings == nil {
		return nil
	}
	return &dto.SiteSettingsResponse{
		ClinicName:   settings.ClinicName,
		WorkingHours: settings.WorkingHours,
	}
}
