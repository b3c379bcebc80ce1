package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNameTaken is returned when registering with a display name that is already in use.
	ErrNameTaken = errors.New("name already in use")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrCategoryNotFound is returned when a category does not exist or is not owned by the caller.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNoteNotFound is returned when a note does not exist or is not owned by the caller.
	ErrNoteNotFound = errors.New("note not found")
	// ErrUnsupportedFileType is returned when an uploaded photo is not a jpg or png.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrNameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "NAME_TAKEN")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrNoteNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case ErrUnsupportedFileType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
