package entity

import "time"

// HomeContent is one display block on the public homepage.
// SectionType is a free-form tag such as "hero", "service", "testimonial" or "logo".
type HomeContent struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SectionType string    `gorm:"type:varchar(50)" json:"section_type"`
	Title       string    `gorm:"type:varchar(200)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(200)" json:"image,omitempty"`
	Order       int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HomeContent) TableName() string {
	return "home_contents"
}

// HasImage reports whether an uploaded file belongs to this block
func (c *HomeContent) HasImage() bool {
	return c.Image != ""
}
