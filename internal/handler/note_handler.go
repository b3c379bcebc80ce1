package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tadasmn/gonotes/internal/auth"
	"github.com/tadasmn/gonotes/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request. CategoryID is
// optional; when present it must reference one of the caller's categories.
type CreateNoteRequest struct {
	Name       string `json:"name" validate:"required"`
	Text       string `json:"text" validate:"required"`
	CategoryID *uint  `json:"category_id"`
}

// NoteFieldsRequest represents a note created under the category named in the
// request path.
type NoteFieldsRequest struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// UpdateNoteRequest represents a note update request.
type UpdateNoteRequest struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// SearchRequest represents a note name search request.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// ListForCategory godoc
// @Summary List notes under a category
// @Tags notes
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id}/notes [get]
func (h *NoteHandler) ListForCategory(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.ListForCategory(c.Request().Context(), userID, categoryID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateUnderCategory godoc
// @Summary Create a note under a category
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body NoteFieldsRequest true "Note fields"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id}/notes [post]
func (h *NoteHandler) CreateUnderCategory(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	categoryID, err := pathID(c)
	if err != nil {
		return err
	}

	var req NoteFieldsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Create(c.Request().Context(), userID, &categoryID, req.Name, req.Text)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// Create godoc
// @Summary Create a note, optionally filed under a category
// @Tags notes
// @Accept json
// @Produce json
// @Param request body CreateNoteRequest true "Note fields"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Create(c.Request().Context(), userID, req.CategoryID, req.Name, req.Text)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// Update godoc
// @Summary Update a note's name and text
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Note fields"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Update(c.Request().Context(), userID, noteID, req.Name, req.Text)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// Delete godoc
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Request().Context(), userID, noteID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "note deleted",
	})
}

// AttachPhoto godoc
// @Summary Attach or replace a note's photo
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Note ID"
// @Param photo formData file true "jpg or png image"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id}/photo [post]
func (h *NoteHandler) AttachPhoto(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read photo file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read photo file")
	}

	note, err := h.noteService.AttachPhoto(c.Request().Context(), userID, noteID, data, fileHeader.Filename)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// ServePhoto godoc
// @Summary Stream a note's photo
// @Tags notes
// @Produce png
// @Param id path int true "Note ID"
// @Success 200 {file} file
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id}/photo [get]
func (h *NoteHandler) ServePhoto(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	path, err := h.noteService.PhotoPath(c.Request().Context(), userID, noteID)
	if err != nil {
		return domainError(err)
	}
	return c.File(path)
}

// Search godoc
// @Summary Search the caller's notes by name substring
// @Tags notes
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search fragment"
// @Success 200 {array} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /search [post]
func (h *NoteHandler) Search(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notes, err := h.noteService.Search(c.Request().Context(), userID, req.Query)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, notes)
}
