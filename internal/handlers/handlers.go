package handlers

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zehrazehrazehra/recipe-backend/internal/storage"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Recipe   *RecipeHandler
	Like     *LikeHandler
	Favorite *FavoriteHandler
	Comment  *CommentHandler
}

// NewHandler creates a unified handler with all sub-handlers. The redis
// client may be nil, which disables caching.
func NewHandler(db *gorm.DB, rdb *redis.Client, uploads *storage.Store, jwtSecret string) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(db, jwtSecret),
		Recipe:   NewRecipeHandler(db, rdb, uploads),
		Like:     NewLikeHandler(db, rdb),
		Favorite: NewFavoriteHandler(db),
		Comment:  NewCommentHandler(db),
	}
}
