package imagestore

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Profile pictures are constrained to fit within this bounding box. Images
// already smaller are written unchanged.
const maxThumbnailSize = 125

// ErrInvalidImage is returned when an upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("uploaded file is not a valid image")

// Store writes uploaded profile pictures under a fixed directory, naming
// each file with a random token to avoid collisions. It never deletes a
// previously stored picture when a user replaces theirs.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory must already exist; the
// server creates it at startup.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory pictures are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save decodes the uploaded image, shrinks it to fit within 125x125 while
// preserving aspect ratio, and writes it to disk. It returns the generated
// file name (not a full path) for storage on the user record.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	name := randomToken() + strings.ToLower(filepath.Ext(file.Filename))
	thumb := imaging.Fit(img, maxThumbnailSize, maxThumbnailSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save picture %s: %w", name, err)
	}
	return name, nil
}

// randomToken returns an 8-hex-character collision-resistant token.
func randomToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
