package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/model"
)

// MockNoteService is a mock implementation of service.NoteService.
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) ListForCategory(ctx context.Context, userID, categoryID uint) ([]model.Note, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, userID uint, categoryID *uint, name, text string) (*model.Note, error) {
	args := m.Called(ctx, userID, categoryID, name, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, userID, noteID uint, name, text string) (*model.Note, error) {
	args := m.Called(ctx, userID, noteID, name, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, userID, noteID uint) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

func (m *MockNoteService) Search(ctx context.Context, userID uint, fragment string) ([]model.Note, error) {
	args := m.Called(ctx, userID, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) AttachPhoto(ctx context.Context, userID, noteID uint, data []byte, originalFilename string) (*model.Note, error) {
	args := m.Called(ctx, userID, noteID, data, originalFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) PhotoPath(ctx context.Context, userID, noteID uint) (string, error) {
	args := m.Called(ctx, userID, noteID)
	return args.String(0), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newTestContext builds an echo context carrying an authenticated principal,
// the way echo-jwt leaves it on the request.
func newTestContext(t *testing.T, method, path, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(userID),
	}))
	return c, rec
}

func TestNoteHandler_Search(t *testing.T) {
	mockSvc := new(MockNoteService)
	mockSvc.On("Search", mock.Anything, uint(1), "No").Return([]model.Note{
		{ID: 1, Name: "Note A", UserID: 1},
	}, nil)
	h := NewNoteHandler(mockSvc)

	c, rec := newTestContext(t, http.MethodPost, "/api/search", `{"query":"No"}`, 1)
	require.NoError(t, h.Search(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var notes []model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Note A", notes[0].Name)
	mockSvc.AssertExpectations(t)
}

func TestNoteHandler_SearchMissingQuery(t *testing.T) {
	h := NewNoteHandler(new(MockNoteService))

	c, _ := newTestContext(t, http.MethodPost, "/api/search", `{}`, 1)
	err := h.Search(c)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestNoteHandler_CreateValidation(t *testing.T) {
	h := NewNoteHandler(new(MockNoteService))

	c, _ := newTestContext(t, http.MethodPost, "/api/notes", `{"text":"body without name"}`, 1)
	err := h.Create(c)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestNoteHandler_CreateUnderCategory(t *testing.T) {
	mockSvc := new(MockNoteService)
	mockSvc.On("Create", mock.Anything, uint(1), mock.MatchedBy(func(categoryID *uint) bool {
		return categoryID != nil && *categoryID == 3
	}), "Plan", "Q1").Return(&model.Note{ID: 10, Name: "Plan", Text: "Q1", UserID: 1}, nil)
	h := NewNoteHandler(mockSvc)

	c, rec := newTestContext(t, http.MethodPost, "/api/categories/3/notes", `{"name":"Plan","text":"Q1"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.CreateUnderCategory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestNoteHandler_CreateUnderCategoryValidation(t *testing.T) {
	h := NewNoteHandler(new(MockNoteService))

	c, _ := newTestContext(t, http.MethodPost, "/api/categories/3/notes", `{"name":"Plan"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.CreateUnderCategory(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestNoteHandler_UpdateNotFound(t *testing.T) {
	mockSvc := new(MockNoteService)
	mockSvc.On("Update", mock.Anything, uint(1), uint(99), "Plan", "Q1").
		Return(nil, errs.ErrNoteNotFound)
	h := NewNoteHandler(mockSvc)

	c, _ := newTestContext(t, http.MethodPut, "/api/notes/99", `{"name":"Plan","text":"Q1"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	body, ok := httpErr.Message.(errs.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "NOTE_NOT_FOUND", body.Code)
	mockSvc.AssertExpectations(t)
}

func TestNoteHandler_Delete(t *testing.T) {
	mockSvc := new(MockNoteService)
	mockSvc.On("Delete", mock.Anything, uint(1), uint(10)).Return(nil)
	h := NewNoteHandler(mockSvc)

	c, rec := newTestContext(t, http.MethodDelete, "/api/notes/10", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("10")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestNoteHandler_ServePhoto(t *testing.T) {
	// A note that never had a photo attached still resolves to a real file
	// (the seeded placeholder), so serving must succeed.
	path := filepath.Join(t.TempDir(), model.DefaultPhoto)
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	mockSvc := new(MockNoteService)
	mockSvc.On("PhotoPath", mock.Anything, uint(1), uint(10)).Return(path, nil)
	h := NewNoteHandler(mockSvc)

	c, rec := newTestContext(t, http.MethodGet, "/api/notes/10/photo", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("10")

	require.NoError(t, h.ServePhoto(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestNoteHandler_MissingPrincipal(t *testing.T) {
	h := NewNoteHandler(new(MockNoteService))

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"No"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Search(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
