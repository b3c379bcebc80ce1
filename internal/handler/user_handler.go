package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tadasmn/gonotes/internal/auth"
	"github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/service"
)

// UserHandler serves the acting user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: "user not found",
				Code:  "USER_NOT_FOUND",
			})
		}
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// domainError converts a domain error into an echo HTTP error with the
// standard ErrorResponse body.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
