package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/model"
	"github.com/tadasmn/gonotes/internal/repository"
)

// CategoryService exposes category operations scoped to an acting user.
// Every lookup is owner-scoped, so another user's category id is
// indistinguishable from a nonexistent one.
type CategoryService interface {
	List(ctx context.Context, userID uint) ([]model.Category, error)
	Create(ctx context.Context, userID uint, name string) (*model.Category, error)
	Rename(ctx context.Context, userID, categoryID uint, name string) (*model.Category, error)
	Delete(ctx context.Context, userID, categoryID uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// List returns the user's categories in insertion order.
func (s *categoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create adds a category for the user. Names need not be unique per user.
func (s *categoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	category := &model.Category{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Rename changes a category's name. The owner never changes.
func (s *categoryService) Rename(ctx context.Context, userID, categoryID uint, name string) (*model.Category, error) {
	category, err := s.repo.FindByIDAndUser(ctx, categoryID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	category.Name = name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return category, nil
}

// Delete removes a category together with every note filed under it.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	if err := s.repo.DeleteWithNotes(ctx, categoryID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
