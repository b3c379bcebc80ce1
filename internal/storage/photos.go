package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/tadasmn/gonotes/internal/errors"
	"github.com/tadasmn/gonotes/internal/model"
)

// thumbnailBound is the bounding box uploaded photos are shrunk to fit.
const thumbnailBound = 250

// PhotoStore persists uploaded note photos under a single directory,
// addressed by generated filename. Extensions are compared case-insensitively
// and the stored name always carries the lowercased extension.
type PhotoStore struct {
	dir string
}

// NewPhotoStore ensures the storage directory exists, seeds the sentinel
// placeholder every photo-less note resolves to, and returns a store over it.
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	s := &PhotoStore{dir: dir}
	if err := s.seedDefault(); err != nil {
		return nil, err
	}
	return s, nil
}

// seedDefault writes the model.DefaultPhoto placeholder if it is not already
// present, so serving a note that never had a photo attached always resolves
// to a real file.
func (s *PhotoStore) seedDefault() error {
	path := filepath.Join(s.dir, model.DefaultPhoto)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat default photo: %w", err)
	}

	placeholder := imaging.New(thumbnailBound, thumbnailBound, color.NRGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF})
	if err := imaging.Save(placeholder, path); err != nil {
		return fmt.Errorf("seed default photo: %w", err)
	}
	return nil
}

// Save validates, downsizes and persists an uploaded photo, returning the
// generated filename for the caller to attach to a note. Images already
// within the bounding box are stored at their original dimensions; larger
// ones are shrunk to fit 250x250 preserving aspect ratio.
func (s *PhotoStore) Save(data []byte, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext != ".jpg" && ext != ".png" {
		return "", errors.ErrUnsupportedFileType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.ErrUnsupportedFileType
	}
	thumb := imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)

	// Random name prevents overwrites and path traversal via client filenames.
	filename := randomHex(8) + ext
	if err := imaging.Save(thumb, filepath.Join(s.dir, filename)); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	return filename, nil
}

// Path returns the filesystem path for a stored filename.
func (s *PhotoStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure means the process is unusable
	}
	return hex.EncodeToString(buf)
}
