// Package document keeps the files attached to fleet records: one file per
// (owner record, document type), stored on local disk.
package document

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrTooLarge    = errors.New("file too large")
	ErrUnsupported = errors.New("only PDF, JPEG and PNG files are allowed")
)

// Allowed maps a sniffed content type to the stored file extension.
var Allowed = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// Store writes documents under Dir/<owner type>/<uuid><ext>.
type Store struct {
	Dir      string
	MaxBytes int64
}

var store = &Store{Dir: "./documents", MaxBytes: 10 << 20}

// Configure points the package at its storage directory and size limit.
func Configure(dir string, maxBytes int64) {
	store = &Store{Dir: dir, MaxBytes: maxBytes}
}

// Check returns the content type of data or why it cannot be stored.
func (s *Store) Check(data []byte) (string, error) {
	if int64(len(data)) > s.MaxBytes {
		return "", fmt.Errorf("%w: limit is %d MB", ErrTooLarge, s.MaxBytes>>20)
	}
	ct := http.DetectContentType(data)
	if _, ok := Allowed[ct]; !ok {
		return "", ErrUnsupported
	}
	return ct, nil
}

func (s *Store) Save(ownerType, contentType string, data []byte) (string, error) {
	dir := filepath.Join(s.Dir, ownerType)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+Allowed[contentType])
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Remove deletes path; a file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
