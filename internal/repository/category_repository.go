package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tadasmn/gonotes/internal/model"
)

// CategoryRepository defines category persistence operations. Lookups that
// feed mutations are scoped by owner so a foreign id behaves like a missing one.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	ListByUser(ctx context.Context, userID uint) ([]model.Category, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	DeleteWithNotes(ctx context.Context, id, userID uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// ListByUser returns the user's categories in insertion order.
func (r *categoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteWithNotes removes a category and all notes filed under it in one
// transaction, so a failed note sweep never leaves a dangling category.
func (r *categoryRepository) DeleteWithNotes(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ? AND user_id = ?", id, userID).
			Delete(&model.Note{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
