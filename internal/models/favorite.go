package models

import "time"

// Favorite bookmarks a recipe for a user, one row per (user, recipe).
type Favorite struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  int       `gorm:"uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
