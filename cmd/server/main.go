package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/tadasmn/gonotes/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tadasmn/gonotes/internal/auth"
	"github.com/tadasmn/gonotes/internal/cache"
	"github.com/tadasmn/gonotes/internal/config"
	"github.com/tadasmn/gonotes/internal/db"
	"github.com/tadasmn/gonotes/internal/handler"
	"github.com/tadasmn/gonotes/internal/model"
	"github.com/tadasmn/gonotes/internal/repository"
	"github.com/tadasmn/gonotes/internal/router"
	"github.com/tadasmn/gonotes/internal/service"
	"github.com/tadasmn/gonotes/internal/storage"
)

// @title Notes API
// @version 1.0
// @description Multi-user note-taking API with categories, photo attachments, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Note{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Note{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	photoStore, err := storage.NewPhotoStore(cfg.PhotoDir)
	if err != nil {
		log.Fatalf("photo store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo)
	noteService := service.NewNoteService(noteRepo, categoryRepo, photoStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	noteHandler := handler.NewNoteHandler(noteService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		categoryHandler,
		noteHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
