package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zehrazehrazehra/recipe-backend/internal/cache"
	"github.com/zehrazehrazehra/recipe-backend/internal/fields"
	"github.com/zehrazehrazehra/recipe-backend/internal/models"
	"github.com/zehrazehrazehra/recipe-backend/internal/storage"
)

const recipeListCacheKey = "recipes:all"

type RecipeHandler struct {
	db      *gorm.DB
	rdb     *redis.Client
	uploads *storage.Store
}

func NewRecipeHandler(db *gorm.DB, rdb *redis.Client, uploads *storage.Store) *RecipeHandler {
	return &RecipeHandler{db: db, rdb: rdb, uploads: uploads}
}

func recipeJSON(r models.Recipe) gin.H {
	return gin.H{
		"id":          r.ID,
		"title":       r.Title,
		"category":    r.Category,
		"prepTime":    r.PrepTime,
		"image":       r.Image,
		"ingredients": r.Ingredients,
		"steps":       r.Steps,
		"likes":       r.Likes,
		"author":      r.Author,
		"rating":      r.Rating,
	}
}

// invalidateRecipeList drops the cached recipe listing after any write.
func invalidateRecipeList(rdb *redis.Client) {
	_ = cache.Delete(context.Background(), rdb, recipeListCacheKey)
}

// formInt parses a form value as an int, defaulting to 0 instead of
// failing the request.
func formInt(c *gin.Context, key string) int {
	s := strings.TrimSpace(c.PostForm(key))
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// GetRecipes returns all recipes. Collection and numeric fields are
// always present in the response, never null.
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []gin.H
	if found, err := cache.Get(ctx, h.rdb, recipeListCacheKey, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	var recipes []models.Recipe
	if err := h.db.Order("id").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	responses := []gin.H{}
	for _, r := range recipes {
		responses = append(responses, recipeJSON(r))
	}

	_ = cache.Set(ctx, h.rdb, recipeListCacheKey, responses, 60*time.Second)
	c.JSON(http.StatusOK, responses)
}

// GetRecipe returns a single recipe by ID
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := h.db.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipeJSON(recipe))
}

// CreateRecipe creates a recipe from a multipart or urlencoded form. An
// uploaded image file wins over an image URL supplied alongside it.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	imageURL := strings.TrimSpace(c.PostForm("image"))
	if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
		if !storage.AllowedFile(file.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}
		saved, err := h.uploads.Save(file)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"filename": file.Filename,
				"error":    err.Error(),
			}).Error("Failed to store upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		imageURL = saved
	}

	recipe := models.Recipe{
		Title:       title,
		Category:    strings.TrimSpace(c.PostForm("category")),
		PrepTime:    formInt(c, "prepTime"),
		Image:       imageURL,
		Ingredients: fields.ParseListString(c.PostForm("ingredients")),
		Steps:       fields.ParseListString(c.PostForm("steps")),
		Likes:       formInt(c, "likes"),
		Author:      strings.TrimSpace(c.PostForm("author")),
		Rating:      formInt(c, "rating"),
	}

	if err := h.db.Create(&recipe).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"title": title,
			"error": err.Error(),
		}).Error("Failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	invalidateRecipeList(h.rdb)
	c.JSON(http.StatusCreated, gin.H{
		"status": "ok",
		"recipe": gin.H{
			"id":    recipe.ID,
			"title": recipe.Title,
			"image": recipe.Image,
		},
	})
}

// UpdateRecipe applies a partial update. Only fields present in the
// body are touched; unparsable numbers are ignored, except rating which
// resets to 0.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := h.db.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var input struct {
		Title       *string          `json:"title"`
		Category    *string          `json:"category"`
		PrepTime    *fields.FlexInt  `json:"prepTime"`
		Image       *string          `json:"image"`
		Ingredients *fields.FlexList `json:"ingredients"`
		Steps       *fields.FlexList `json:"steps"`
		Rating      *fields.FlexInt  `json:"rating"`
	}
	// A malformed body behaves like an empty one
	_ = c.ShouldBindJSON(&input)

	if input.Title != nil {
		if t := strings.TrimSpace(*input.Title); t != "" {
			recipe.Title = t
		}
	}
	if input.Category != nil {
		recipe.Category = strings.TrimSpace(*input.Category)
	}
	if input.PrepTime != nil && input.PrepTime.Valid {
		recipe.PrepTime = input.PrepTime.Value
	}
	if input.Image != nil {
		recipe.Image = strings.TrimSpace(*input.Image)
	}
	if input.Ingredients != nil {
		recipe.Ingredients = input.Ingredients.Values
	}
	if input.Steps != nil {
		recipe.Steps = input.Steps.Values
	}
	if input.Rating != nil {
		if input.Rating.Valid {
			recipe.Rating = input.Rating.Value
		} else {
			recipe.Rating = 0
		}
	}

	if err := h.db.Save(&recipe).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"recipe_id": recipe.ID,
			"error":     err.Error(),
		}).Error("Failed to update recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	invalidateRecipeList(h.rdb)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteRecipe removes a recipe, its engagement rows and, best-effort,
// any locally stored image asset.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := h.db.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"recipe_id": recipe.ID,
			"error":     err.Error(),
		}).Error("Failed to delete recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	// Asset cleanup is best-effort; only /uploads/ paths are touched
	h.uploads.Remove(recipe.Image)

	invalidateRecipeList(h.rdb)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
