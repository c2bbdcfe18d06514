package routes

import (
	"time"

	"unilink/handlers"
	"unilink/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(auth *handlers.AuthHandler, posts *handlers.PostHandler, users *handlers.UserHandler, push *handlers.PushHandler) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimitMiddleware())

	// Public routes (no auth required)
	router.POST("/api/signup", auth.Signup)
	router.POST("/api/login", auth.Login)
	router.GET("/api/vapid-public-key", push.GetVapidPublicKey)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Profile
	protected.GET("/me", users.GetMyProfile)
	protected.GET("/user/:id", users.GetUser)

	// Friends
	protected.POST("/friends", users.AddFriend)
	protected.DELETE("/friends/:id", users.RemoveFriend)

	// Posts
	protected.POST("/posts", posts.CreatePost)
	protected.GET("/posts/:id", posts.GetPostDetails)
	protected.PUT("/posts/:id", posts.UpdateCaption)
	protected.DELETE("/posts/:id", posts.DeletePost)

	// Engagement
	protected.POST("/posts/:id/like", posts.LikePost)
	protected.DELETE("/posts/:id/like", posts.UnlikePost)
	protected.POST("/posts/:id/vote", posts.VotePoll)

	// Feeds
	protected.GET("/feed/friends", posts.GetFriendsFeed)
	protected.GET("/feed/university", posts.GetUniversityFeed)

	// Push subscriptions
	protected.POST("/subscribe", push.Subscribe)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
