package app

import (
	"context"

	"presto-auth/internal/auth/credentials"
	"presto-auth/internal/auth/handler"
	"presto-auth/internal/auth/mapper"
	"presto-auth/internal/auth/provider"
	"presto-auth/internal/auth/provider/google"
	"presto-auth/internal/auth/provider/prestodoctor"
	"presto-auth/internal/config"
	"presto-auth/internal/media"
	"presto-auth/internal/middleware"
	"presto-auth/internal/session"
	"presto-auth/internal/store"
	"presto-auth/internal/user"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	userStore := user.NewPGStore(infra.DB)
	mediaStore := media.NewPGStore(infra.DB)
	loginStores := store.NewPostgres(infra.DB, userStore, mediaStore)
	loginMapper := mapper.New(loginStores, nil)
	credentialService := credentials.NewService(infra.DB)

	prestoProvider, err := prestodoctor.New(
		cfg.PrestoClientID,
		cfg.PrestoClientSecret,
		cfg.PrestoRedirectURL,
		cfg.PrestoBaseURL,
	)
	if err != nil {
		return nil, nil, err
	}

	providers := []provider.OAuthProvider{prestoProvider}

	// Google is optional: skipped when not configured.
	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	}

	registry := provider.NewRegistry(providers...)

	authHandler := handler.NewHandler(
		registry,
		sessionStore,
		loginMapper,
		credentialService,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	api.GET("/me", func(c *gin.Context) {
		userID, _ := middleware.UserIDFromContext(c.Request.Context())

		u, err := userStore.FindByID(c.Request.Context(), userID)
		if err != nil || u == nil {
			c.JSON(404, gin.H{"error": "user not found"})
			return
		}

		c.JSON(200, gin.H{
			"user_id":               u.ID,
			"email":                 u.Email,
			"full_name":             u.FullName,
			"license_verified_at":   u.LicenseVerifiedAt,
			"presto_license_number": u.PrestoLicenseNumber,
			"last_full_import_at":   u.LastFullImportAt(),
		})
	})

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
