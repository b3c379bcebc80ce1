package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/model"
	"github.com/tadasmn/gonotes/internal/repository"
)

// PhotoSaver persists uploaded photo bytes and resolves stored filenames.
// Implemented by storage.PhotoStore; an interface here keeps tests off the disk.
type PhotoSaver interface {
	Save(data []byte, originalFilename string) (string, error)
	Path(filename string) string
}

// NoteService exposes note operations scoped to an acting user.
type NoteService interface {
	ListForCategory(ctx context.Context, userID, categoryID uint) ([]model.Note, error)
	Create(ctx context.Context, userID uint, categoryID *uint, name, text string) (*model.Note, error)
	Update(ctx context.Context, userID, noteID uint, name, text string) (*model.Note, error)
	Delete(ctx context.Context, userID, noteID uint) error
	Search(ctx context.Context, userID uint, fragment string) ([]model.Note, error)
	AttachPhoto(ctx context.Context, userID, noteID uint, data []byte, originalFilename string) (*model.Note, error)
	PhotoPath(ctx context.Context, userID, noteID uint) (string, error)
}

type noteService struct {
	noteRepo     repository.NoteRepository
	categoryRepo repository.CategoryRepository
	photos       PhotoSaver
}

// NewNoteService creates a new note service.
func NewNoteService(noteRepo repository.NoteRepository, categoryRepo repository.CategoryRepository, photos PhotoSaver) NoteService {
	return &noteService{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		photos:       photos,
	}
}

// ListForCategory returns the notes filed under one of the user's categories.
func (s *noteService) ListForCategory(ctx context.Context, userID, categoryID uint) ([]model.Note, error) {
	if _, err := s.categoryRepo.FindByIDAndUser(ctx, categoryID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return s.noteRepo.ListByCategory(ctx, categoryID)
}

// Create adds a note for the user. When a category is given it must belong to
// the same user.
func (s *noteService) Create(ctx context.Context, userID uint, categoryID *uint, name, text string) (*model.Note, error) {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByIDAndUser(ctx, *categoryID, userID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errs.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
	}

	note := &model.Note{
		Name:       name,
		Text:       text,
		Photo:      model.DefaultPhoto,
		CategoryID: categoryID,
		UserID:     userID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update replaces a note's name and text. The photo is left untouched; use
// AttachPhoto to replace it.
func (s *noteService) Update(ctx context.Context, userID, noteID uint, name, text string) (*model.Note, error) {
	note, err := s.findOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Name = name
	note.Text = text
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

// Delete removes a note.
func (s *noteService) Delete(ctx context.Context, userID, noteID uint) error {
	if err := s.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Search returns the user's notes whose name contains the fragment, ordered
// by name ascending. Matching semantics are pinned in the repository.
func (s *noteService) Search(ctx context.Context, userID uint, fragment string) ([]model.Note, error) {
	return s.noteRepo.SearchByName(ctx, userID, fragment)
}

// AttachPhoto ingests an uploaded image and points the note at the stored
// file. The file is written before the row update; a file orphaned by a
// failed update is accepted.
func (s *noteService) AttachPhoto(ctx context.Context, userID, noteID uint, data []byte, originalFilename string) (*model.Note, error) {
	note, err := s.findOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	filename, err := s.photos.Save(data, originalFilename)
	if err != nil {
		return nil, err
	}

	note.Photo = filename
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note photo: %w", err)
	}
	return note, nil
}

// PhotoPath resolves the filesystem path of a note's photo for serving.
func (s *noteService) PhotoPath(ctx context.Context, userID, noteID uint) (string, error) {
	note, err := s.findOwned(ctx, userID, noteID)
	if err != nil {
		return "", err
	}
	return s.photos.Path(note.Photo), nil
}

func (s *noteService) findOwned(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	note, err := s.noteRepo.FindByIDAndUser(ctx, noteID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return note, nil
}
