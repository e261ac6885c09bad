package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zehrazehrazehra/recipe-backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// GetComments returns all comments for a recipe with the author's
// display name resolved. Authors that no longer resolve show as
// "Unknown".
func (h *CommentHandler) GetComments(c *gin.Context) {
	var comments []models.Comment
	if err := h.db.Where("recipe_id = ?", c.Param("recipeId")).Preload("User").Order("id").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := []gin.H{}
	for _, comment := range comments {
		author := comment.User.Username
		if author == "" {
			author = "Unknown"
		}
		responses = append(responses, gin.H{
			"id":      comment.ID,
			"user":    author,
			"content": comment.Content,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// CreateComment adds a comment to a recipe. Both the author and the
// recipe must exist.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	_ = c.ShouldBindJSON(&input)

	if input.UserID == 0 || strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var recipe models.Recipe
	if err := h.db.First(&recipe, c.Param("recipeId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	comment := models.Comment{
		UserID:   user.ID,
		RecipeID: recipe.ID,
		Content:  input.Content,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
