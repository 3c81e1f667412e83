package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/eventahq/eventa-api/config"
	"github.com/eventahq/eventa-api/internal/cache"
	"github.com/eventahq/eventa-api/internal/handlers"
	"github.com/eventahq/eventa-api/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	var responseCache *cache.Cache
	if cfg.RedisAddr != "" {
		responseCache, err = cache.New(cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, response caching disabled.")
			responseCache = nil
		}
	}

	r := NewRouter(db, cfg, responseCache)

	log.WithField("port", cfg.Port).Info("Starting Eventa API.")
	return r.Run(":" + cfg.Port)
}

func NewRouter(db *gorm.DB, cfg *config.Config, responseCache *cache.Cache) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.CacheMiddleware(responseCache))

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login(cfg.JWTSecret))
		}

		events := public.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/featured", handlers.ListFeaturedEvents)
			events.GET("/search", handlers.SearchEvents)
			events.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		auth := protected.Group("/auth")
		{
			auth.GET("/me", handlers.GetMe)
			auth.PATCH("/update-me", handlers.UpdateMe)
			auth.PATCH("/update-password", handlers.UpdatePassword)
		}

		events := protected.Group("/events")
		{
			events.POST("", handlers.CreateEvent)
			events.PATCH("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
			events.PATCH("/:id/join", handlers.JoinEvent)
			events.PATCH("/:id/leave", handlers.LeaveEvent)
			events.PATCH("/:id/like", handlers.LikeEvent)
		}

		reviews := protected.Group("/events/:id/reviews")
		{
			reviews.GET("", handlers.ListEventReviews)
			reviews.POST("", handlers.CreateReview)
			reviews.PATCH("/:reviewId", handlers.UpdateReview)
			reviews.DELETE("/:reviewId", handlers.DeleteReview)
		}

		subscriptions := protected.Group("/subscriptions")
		{
			subscriptions.POST("/trial", handlers.StartTrialSubscription)
			subscriptions.GET("/current", handlers.GetCurrentSubscription)
			subscriptions.PATCH("/cancel", handlers.CancelSubscription)
		}

		users := protected.Group("/users")
		{
			users.GET("", middleware.RequireAdmin(), handlers.ListUsers)
			users.GET("/my-events", handlers.MyEvents)
			users.GET("/my-past-events", handlers.MyPastEvents)
			users.GET("/my-organized-events", handlers.MyOrganizedEvents)
			users.GET("/my-liked-events", handlers.MyLikedEvents)
			users.GET("/:id", handlers.GetUser)
			users.GET("/:id/events", handlers.UserEvents)
			users.GET("/:id/past-events", handlers.UserPastEvents)
			users.GET("/:id/organized-events", handlers.UserOrganizedEvents)
		}
	}

	return r
}
