package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/tolga/examreg/internal/pkg/logger"
)

// allowedExtensions is the photo extension whitelist (lowercase, no dot)
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// LocalStorage stores photo assets on the local filesystem.
// Names are generated per write, so concurrent saves never collide.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// validateExtension checks the original filename against the whitelist and
// returns the lowercased extension without the leading dot.
func validateExtension(originalName string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		return "", apperrors.NewInvalidPhotoTypeError(fmt.Sprintf("file %q has no extension", originalName))
	}
	if !allowedExtensions[ext] {
		return "", apperrors.NewInvalidPhotoTypeError(fmt.Sprintf("file extension %q is not allowed", ext))
	}
	return ext, nil
}

// SaveFile validates and stores an uploaded photo, returning the generated stored name.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewValidationError("photo", "please select photo")
	}

	ext, err := validateExtension(fileHeader.Filename)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ls.write(file, fileHeader.Filename, ext)
}

// SaveBytes validates and stores raw photo bytes, returning the generated stored name.
func (ls *LocalStorage) SaveBytes(data []byte, originalName string) (string, error) {
	ext, err := validateExtension(originalName)
	if err != nil {
		return "", err
	}
	return ls.write(bytes.NewReader(data), originalName, ext)
}

// write copies content into a freshly named file under the base path.
func (ls *LocalStorage) write(src io.Reader, originalName, ext string) (string, error) {
	storedName := uuid.New().String() + "." + ext
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", originalName).Str("saved_as", storedName).Msg("Photo saved successfully")
	return storedName, nil
}

// physicalPath resolves a stored name to a path inside the base directory.
// Only the base name is honoured, so traversal segments are discarded.
func (ls *LocalStorage) physicalPath(storedName string) (string, error) {
	filename := filepath.Base(storedName)
	if filename == "" || filename == "." || filename == "/" || filename == ".." {
		return "", fmt.Errorf("invalid stored name: %s", storedName)
	}
	return filepath.Join(ls.basePath, filename), nil
}

// DeleteFile removes a stored photo from the filesystem.
// Returns nil if deletion succeeds or the file doesn't exist (idempotent).
func (ls *LocalStorage) DeleteFile(storedName string) error {
	if storedName == "" {
		return nil
	}

	physicalPath, err := ls.physicalPath(storedName)
	if err != nil {
		return err
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Photo to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Photo deleted successfully")
	return nil
}

// Open returns a reader over a stored photo.
func (ls *LocalStorage) Open(storedName string) (io.ReadCloser, error) {
	physicalPath, err := ls.physicalPath(storedName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(physicalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to open photo %s: %w", storedName, err)
	}
	return f, nil
}

// Path returns the full filesystem path for a stored photo.
func (ls *LocalStorage) Path(storedName string) (string, error) {
	physicalPath, err := ls.physicalPath(storedName)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		return "", apperrors.ErrPhotoNotFound
	}
	return physicalPath, nil
}
