package models

import "time"

// Like records that a user currently likes a recipe. The composite
// unique index guarantees at most one row per (user, recipe) pair.
type Like struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_likes_user_recipe" json:"user_id"`
	RecipeID  int       `gorm:"uniqueIndex:idx_likes_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
