package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zehrazehrazehra/recipe-backend/internal/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

// ToggleFavorite flips a user's bookmark on a recipe.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
	}
	_ = c.ShouldBindJSON(&input)

	var user models.User
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var action string
	err := h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = "unfavorited"
			return nil
		}
		action = "favorited"
		return tx.Create(&models.Favorite{UserID: user.ID, RecipeID: recipe.ID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": action})
}

// GetFavorites returns the recipes a user has bookmarked.
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var favorites []models.Favorite
	if err := h.db.Where("user_id = ?", user.ID).Preload("Recipe").Order("id").Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	responses := []gin.H{}
	for _, fav := range favorites {
		responses = append(responses, recipeJSON(fav.Recipe))
	}
	c.JSON(http.StatusOK, responses)
}
