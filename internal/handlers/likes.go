package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zehrazehrazehra/recipe-backend/internal/models"
)

type LikeHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewLikeHandler(db *gorm.DB, rdb *redis.Client) *LikeHandler {
	return &LikeHandler{db: db, rdb: rdb}
}

// ToggleLike flips a user's like on a recipe and reports the direction.
// The whole toggle runs in one transaction: the conditional DELETE
// decides liked vs unliked, the counter moves by SQL expression, and
// the unique (user_id, recipe_id) index rejects a concurrent double
// insert — no in-process read-modify-write can lose an update.
func (h *LikeHandler) ToggleLike(c *gin.Context) {
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
		res := tx.Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = "unliked"
			// Floor at zero even if the counter drifted
			return tx.Model(&models.Recipe{}).
				Where("id = ? AND likes > 0", recipe.ID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error
		}

		action = "liked"
		if err := tx.Create(&models.Like{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"recipe_id": recipe.ID,
			"error":     err.Error(),
		}).Error("Like toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	// Reload for the resulting counter value
	if err := h.db.First(&recipe, recipe.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	invalidateRecipeList(h.rdb)
	c.JSON(http.StatusOK, gin.H{"status": action, "likes": recipe.Likes})
}
