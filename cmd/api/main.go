package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"speed_go_backend/internal/api"
	"speed_go_backend/internal/auth"
	"speed_go_backend/internal/config"
	"speed_go_backend/internal/database"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/services"
	authutil "speed_go_backend/internal/utils/auth"
	"speed_go_backend/internal/utils/broker"
	"speed_go_backend/internal/wsocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "speed-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize internal services
	messageBroker := broker.NewBroker()
	submissionServiceDB := services.NewSubmissionServiceDB(db)
	evidenceServiceDB := services.NewEvidenceServiceDB(db)
	userServiceDB := services.NewUserServiceDB(db)

	duplicateDetector := services.NewDuplicateDetector(submissionServiceDB)
	submissionService := services.NewSubmissionService(submissionServiceDB, messageBroker, cfg.DefaultPageSize, cfg.MaxPageSize)
	moderationService := services.NewModerationService(submissionServiceDB, duplicateDetector, messageBroker, cfg.DuplicateCorpusName)
	evidenceService := services.NewEvidenceService(submissionServiceDB, evidenceServiceDB, messageBroker, cfg.DefaultPageSize, cfg.MaxPageSize)
	authService := services.NewAuthService(userServiceDB, authutil.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.Origins()),
	}
	wsHandler := wsocket.NewHandler(messageBroker, upgrader, 30*time.Second)
	r.GET("/ws/submissions", auth.AuthMiddleware(authService), auth.RequireRole(models.RoleModerator, models.RoleAnalyst), func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		wsHandler.HandleWebSocket(c.Writer, c.Request, user)
	})

	// The websocket route above stays outside the per-request timeout.
	r.Use(api.Timeout(cfg.RequestTimeout))
	auth.SetupRoutes(r, authService, auth.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst))
	api.SetupRoutes(r, submissionService, moderationService, evidenceService, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server stopped")
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
