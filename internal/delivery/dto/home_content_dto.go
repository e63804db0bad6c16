package dto

import "time"

// Request DTOs

type HomeContentRequest struct {
	SectionType string `form:"section_type" validate:"max=50"`
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	Order       int    `form:"order"`
}

// ImageUpload is a file read from a multipart form.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// Response DTOs

type HomeContentResponse struct {
	ID          uint      `json:"id"`
	SectionType string    `json:"section_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}
