package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wizspeek/config"
	"wizspeek/database"
	"wizspeek/handlers"
	"wizspeek/metrics"
	"wizspeek/middleware"
	"wizspeek/push"
	"wizspeek/routes"
	"wizspeek/service"
	"wizspeek/websocket"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("🚀 Starting WizSpeek Backend Server...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(cfg.MongoDB); err != nil {
			dbErr = err
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", dbErr)
	}
	defer func() {
		if err := database.DisconnectMongo(); err != nil {
			log.Printf("❌ MongoDB disconnect: %v", err)
		}
	}()
	log.Println("✅ MongoDB connected successfully")

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	if err := database.EnsureIndexes(indexCtx, database.DB); err != nil {
		log.Printf("⚠️ Could not ensure indexes: %v", err)
	}
	indexCancel()

	// ===== GIN MODE =====
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	m := metrics.Default()
	tokens := middleware.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// ===== REPOSITORIES =====
	users := database.NewUserRepository(database.DB)
	profiles := database.NewProfileRepository(database.DB)
	relationships := database.NewRelationshipRepository(database.DB)
	invitations := database.NewInvitationRepository(database.DB)
	subscriptions := database.NewPushSubscriptionRepository(database.DB)

	// ===== NOTIFICATIONS =====
	log.Println("🔌 Initializing WebSocket manager...")
	wsManager := websocket.NewManager(m)
	go wsManager.Start(ctx)

	pushSender := push.NewSender(subscriptions, cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber, m)
	if !cfg.PushEnabled() {
		log.Println("⚠️ VAPID keys not set, web push disabled")
	}
	notifier := service.MultiNotifier{wsManager, pushSender}

	handlers.SetServices(handlers.Services{
		Auth:     service.NewAuthService(users, profiles, tokens),
		Account:  service.NewAccountService(users),
		Profile:  service.NewProfileService(profiles, relationships, users, notifier, m),
		Contacts: service.NewContactService(relationships, profiles, users, invitations, notifier, cfg.Contacts.InvitationTTL),
		Push:     pushSender,
	})

	router := routes.SetupRouter(cfg, tokens, m, wsManager)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	log.Println("✅ Server is ready and accepting connections")

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}
	stop()

	log.Println("👋 Server stopped gracefully")
}
