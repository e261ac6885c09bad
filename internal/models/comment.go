package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `json:"user_id"`
	RecipeID  int       `gorm:"index" json:"recipe_id"`
	Content   string    `gorm:"type:text" json:"content"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	UserID  int    `json:"user_id"`
	Content string `json:"content"`
}
