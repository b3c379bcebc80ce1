package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Category, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteWithNotes(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestCategoryService_Create(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

	service := NewCategoryService(mockRepo)
	category, err := service.Create(context.Background(), 1, "Work")

	assert.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, uint(1), category.UserID)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_List(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("ListByUser", mock.Anything, uint(1)).Return([]model.Category{
		{ID: 1, Name: "Work", UserID: 1},
		{ID: 2, Name: "Home", UserID: 1},
	}, nil)

	service := NewCategoryService(mockRepo)
	categories, err := service.List(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Work", categories[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Rename(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		categoryID    uint
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name:       "owner renames own category",
			userID:     1,
			categoryID: 5,
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByIDAndUser", mock.Anything, uint(5), uint(1)).
					Return(&model.Category{ID: 5, Name: "Old", UserID: 1}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:       "another user's category behaves as missing",
			userID:     2,
			categoryID: 5,
			setupMock: func(m *MockCategoryRepository) {
				m.On("FindByIDAndUser", mock.Anything, uint(5), uint(2)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			category, err := service.Rename(context.Background(), tt.userID, tt.categoryID, "New")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "New", category.Name)
				assert.Equal(t, tt.userID, category.UserID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("owner deletes own category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("DeleteWithNotes", mock.Anything, uint(5), uint(1)).Return(nil)

		service := NewCategoryService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), 1, 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("another user's category behaves as missing", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("DeleteWithNotes", mock.Anything, uint(5), uint(2)).Return(gorm.ErrRecordNotFound)

		service := NewCategoryService(mockRepo)
		assert.Equal(t, errs.ErrCategoryNotFound, service.Delete(context.Background(), 2, 5))
		mockRepo.AssertExpectations(t)
	})
}
