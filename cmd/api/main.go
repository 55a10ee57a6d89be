package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lawlink/internal/database"
	"lawlink/internal/middleware"
	"lawlink/internal/modules/admin"
	"lawlink/internal/modules/applications"
	"lawlink/internal/modules/auth"
	"lawlink/internal/modules/cases"
	"lawlink/internal/modules/chat"
	"lawlink/internal/modules/lawyers"
	"lawlink/internal/modules/notification"
	jwtsvc "lawlink/internal/pkg/jwt"
	"lawlink/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	lawyerRepo := repository.NewLawyerProfileRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	notifService := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifService)

	authService := auth.NewService(userRepo, lawyerRepo, j)
	authHandler := auth.NewHandler(authService)

	lawyerService := lawyers.NewService(lawyerRepo)
	lawyerHandler := lawyers.NewHandler(lawyerService)

	caseService := cases.NewService(caseRepo, appRepo, notifService)
	caseHandler := cases.NewHandler(caseService)

	appService := applications.NewService(appRepo, caseRepo, userRepo, notifService)
	appHandler := applications.NewHandler(appService)

	hub := chat.NewHub()
	chatService := chat.NewService(chatRepo, caseRepo, hub, notifService)
	chatHandler := chat.NewHandler(chatService, hub, j)

	adminService := admin.NewService(caseRepo, lawyerRepo, userRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		lawyerHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			caseHandler.RegisterRoutes(protected)
			appHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			lawyerHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	chatHandler.RegisterWS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
