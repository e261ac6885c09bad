package models

import (
	"time"

	"github.com/zehrazehrazehra/recipe-backend/internal/fields"
)

type Recipe struct {
	ID          int               `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Category    string            `json:"category"`
	PrepTime    int               `json:"prepTime"` // minutes
	Image       string            `gorm:"type:text" json:"image"` // /uploads/... path or external URL
	Ingredients fields.StringList `gorm:"type:jsonb" json:"ingredients"`
	Steps       fields.StringList `gorm:"type:jsonb" json:"steps"`
	Likes       int               `gorm:"default:0" json:"likes"`
	Author      string            `json:"author"`
	Rating      int               `gorm:"default:0" json:"rating"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
