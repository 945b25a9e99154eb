package routes

import (
	"net/http"
	"strings"
	"time"

	"wizspeek/config"
	"wizspeek/handlers"
	"wizspeek/metrics"
	"wizspeek/middleware"
	"wizspeek/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(cfg *config.Config, tokens *middleware.TokenManager, m *metrics.Metrics, ws *websocket.Manager) *gin.Engine {
	router := gin.Default()
	router.Use(m.Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/api/health", func(c *gin.Context) {
		online := 0
		if ws != nil {
			online = ws.GetConnectedUsers()
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "WizSpeek API is running",
			"time":    time.Now().Unix(),
			"ws":      "WebSocket available at /ws",
			"online":  online,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes, rate limited per client IP
	limiter := middleware.NewIPRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
	public := router.Group("/api")
	public.Use(middleware.RateLimitMiddleware(limiter))
	public.POST("/signup", handlers.Signup)
	public.POST("/login", handlers.Login)
	public.GET("/vapid-public-key", handlers.GetVapidPublicKey)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(tokens))

	// Account
	protected.GET("/me", handlers.GetMyAccount)
	protected.PUT("/me", handlers.UpdateMyAccount)
	protected.PUT("/me/status", handlers.UpdateUserStatus)

	// Profile
	protected.GET("/me/profile", handlers.GetMyProfile)
	protected.PUT("/me/profile", handlers.UpdateMyProfile)
	protected.GET("/users/:id/profile", handlers.GetUserProfile)
	protected.POST("/display-name/preview", handlers.PreviewDisplayName)

	// Privacy
	protected.PUT("/me/privacy/name-display", handlers.SetNameDisplayDefaults)
	protected.PUT("/me/privacy/contacts/:id", handlers.SetContactOverride)
	protected.PUT("/me/privacy/contacts/:id/fields/:field", handlers.SetFieldVisibility)
	protected.GET("/me/privacy/contacts/:id/preview", handlers.PreviewContactView)

	// Contacts
	protected.GET("/contacts", handlers.GetContacts)
	protected.POST("/contacts", handlers.AddContact)
	protected.PUT("/contacts/:id", handlers.UpdateContact)
	protected.DELETE("/contacts/:id", handlers.RemoveContact)

	// Invitations
	protected.POST("/invitations", handlers.CreateInvitation)
	protected.POST("/invitations/:code/accept", handlers.AcceptInvitation)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)

	if ws != nil {
		router.GET("/ws", gin.WrapF(websocket.WebSocketHandler(ws, tokens)))
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
				"message": "Check the API documentation for available endpoints",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "path": c.Request.URL.Path})
	})

	return router
}
