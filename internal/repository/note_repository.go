package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tadasmn/gonotes/internal/model"
)

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id, userID uint) error
	SearchByName(ctx context.Context, userID uint, fragment string) ([]model.Note, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchByName matches the fragment anywhere in the note name via
// LIKE '%fragment%'. Under the connection's utf8mb4 default collation the
// match is case-insensitive; that is the pinned behavior.
func (r *noteRepository) SearchByName(ctx context.Context, userID uint, fragment string) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name LIKE ?", userID, "%"+fragment+"%").
		Order("name ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
