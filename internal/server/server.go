package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zehrazehrazehra/recipe-backend/internal/config"
	"github.com/zehrazehrazehra/recipe-backend/internal/database"
	"github.com/zehrazehrazehra/recipe-backend/internal/handlers"
	"github.com/zehrazehrazehra/recipe-backend/internal/middleware"
	"github.com/zehrazehrazehra/recipe-backend/internal/storage"
)

// maxBodyBytes caps request bodies, uploads included.
const maxBodyBytes = 16 << 20 // 16 MiB

type Server struct {
	cfg     *config.Config
	db      *database.Database
	handler *handlers.Handler
	uploads *storage.Store
}

// New creates and configures a new server
func New(cfg *config.Config) (*http.Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	uploads, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// Redis is optional; without it every cache lookup is a miss
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, err
		}
		logrus.Info("✅ Redis connected successfully")
	}

	newServer := &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(db.DB, rdb, uploads, cfg.JWTSecret),
		uploads: uploads,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logrus.Infof("🚀 Server starting on port %s", cfg.Port)
	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.MaxMultipartMemory = maxBodyBytes

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(limitBodySize(maxBodyBytes))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Pocket Chef API is running!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Stored image assets
	r.Static("/uploads", s.uploads.Dir())

	// Recipes
	r.GET("/recipes", s.handler.Recipe.GetRecipes)
	r.GET("/recipes/:id", s.handler.Recipe.GetRecipe)
	r.POST("/recipes", s.handler.Recipe.CreateRecipe)
	r.PUT("/recipes/:id", s.handler.Recipe.UpdateRecipe)
	r.DELETE("/recipes/:id", s.handler.Recipe.DeleteRecipe)

	// Engagement
	r.POST("/recipes/:id/like", s.handler.Like.ToggleLike)
	r.POST("/recipes/:id/favorite", s.handler.Favorite.ToggleFavorite)
	r.GET("/users/:id/favorites", s.handler.Favorite.GetFavorites)

	// Comments
	r.GET("/comments/:recipeId", s.handler.Comment.GetComments)
	r.POST("/comments/:recipeId", s.handler.Comment.CreateComment)

	// Accounts
	r.POST("/register", s.handler.Auth.Register)
	r.POST("/login", s.handler.Auth.Login)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(s.cfg.JWTSecret))
	{
		protected.GET("/me", s.handler.Auth.Me)
	}

	return r
}

func limitBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
