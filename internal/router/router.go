package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tadasmn/gonotes/internal/config"
	"github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	noteHandler *handler.NoteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"service": "notes-api"})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		// Missing and malformed tokens alike are 401s, with the standard body.
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.GET("/me", userHandler.Me)

	// Category routes
	secured.GET("/categories", categoryHandler.List)
	secured.POST("/categories", categoryHandler.Create)
	secured.PUT("/categories/:id", categoryHandler.Rename)
	secured.DELETE("/categories/:id", categoryHandler.Delete)

	// Note routes
	secured.GET("/categories/:id/notes", noteHandler.ListForCategory)
	secured.POST("/categories/:id/notes", noteHandler.CreateUnderCategory)
	secured.POST("/notes", noteHandler.Create)
	secured.PUT("/notes/:id", noteHandler.Update)
	secured.DELETE("/notes/:id", noteHandler.Delete)
	secured.POST("/notes/:id/photo", noteHandler.AttachPhoto)
	secured.GET("/notes/:id/photo", noteHandler.ServePhoto)
	secured.POST("/search", noteHandler.Search)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
