package filestorage

import (
	"io"
	"mime/multipart"
)

// PhotoStorage defines the interface for photo asset operations
type PhotoStorage interface {
	// SaveFile validates and stores an uploaded photo, returning the stored name
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveBytes validates and stores raw photo bytes under the original filename's extension
	SaveBytes(data []byte, originalName string) (string, error)

	// DeleteFile removes a stored photo; missing files are not an error
	DeleteFile(storedName string) error

	// Open returns a reader over a stored photo
	Open(storedName string) (io.ReadCloser, error)

	// Path returns the full filesystem path of a stored photo
	Path(storedName string) (string, error)
}
