package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/middleware"
	"blogapi/internal/modules/admin"
	"blogapi/internal/modules/auth"
	"blogapi/internal/modules/post"
	"blogapi/internal/modules/upload"
	jwtsvc "blogapi/internal/pkg/jwt"
	"blogapi/internal/pkg/logger"
	"blogapi/internal/repository"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, refreshRepo, auditRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	postService := post.NewService(postRepo, auditRepo)
	postHandler := post.NewHandler(postService)

	uploadService := upload.NewService(uploadRepo, auditRepo, cfg.UploadDir, cfg.MaxUploadSize)
	uploadHandler := upload.NewHandler(uploadService)

	adminService := admin.NewService(userRepo, postRepo, uploadRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.MaxMultipartMemory = cfg.MaxUploadSize

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// reads with optional session: anonymous callers see public posts only
		reads := v1.Group("/")
		reads.Use(middleware.OptionalJWTAuth(j))
		{
			postHandler.RegisterReadRoutes(reads)
		}

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			postHandler.RegisterWriteRoutes(protected)
			uploadHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
