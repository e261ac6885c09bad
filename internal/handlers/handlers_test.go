package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zehrazehrazehra/recipe-backend/internal/database"
	"github.com/zehrazehrazehra/recipe-backend/internal/middleware"
	"github.com/zehrazehrazehra/recipe-backend/internal/models"
	"github.com/zehrazehrazehra/recipe-backend/internal/storage"
)

const testSecret = "test-secret"

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	uploads *storage.Store
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	uploads, err := storage.New(t.TempDir())
	require.NoError(t, err)

	h := NewHandler(db, nil, uploads, testSecret)

	r := gin.New()
	r.GET("/recipes", h.Recipe.GetRecipes)
	r.GET("/recipes/:id", h.Recipe.GetRecipe)
	r.POST("/recipes", h.Recipe.CreateRecipe)
	r.PUT("/recipes/:id", h.Recipe.UpdateRecipe)
	r.DELETE("/recipes/:id", h.Recipe.DeleteRecipe)
	r.POST("/recipes/:id/like", h.Like.ToggleLike)
	r.POST("/recipes/:id/favorite", h.Favorite.ToggleFavorite)
	r.GET("/users/:id/favorites", h.Favorite.GetFavorites)
	r.GET("/comments/:recipeId", h.Comment.GetComments)
	r.POST("/comments/:recipeId", h.Comment.CreateComment)
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(testSecret))
	protected.GET("/me", h.Auth.Me)

	return &testEnv{router: r, db: db, uploads: uploads}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doForm(t *testing.T, path string, fields map[string]string, filename string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) createUser(t *testing.T, username string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hashed), Role: "user"}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) createRecipe(t *testing.T, title string) models.Recipe {
	t.Helper()
	recipe := models.Recipe{Title: title}
	require.NoError(t, e.db.Create(&recipe).Error)
	return recipe
}
