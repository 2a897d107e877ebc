// Package docview holds the state of the document viewer: the single object
// handle it has acquired for the open document, and the zoom level.
package docview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const (
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 25
	DefaultZoom = 100
)

var ErrEmptyDocument = errors.New("document has no content")

// ObjectStore hands out short-lived URLs for document bytes.
type ObjectStore interface {
	Create(data []byte, contentType string) (string, error)
	Revoke(url string) error
}

// Document is what the viewer shows.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Viewer owns at most one URL at a time. Opening a document releases the
// previous URL before creating the next one; Close releases it and may be
// called any number of times.
type Viewer struct {
	store ObjectStore

	mu   sync.Mutex
	url  string
	doc  string
	zoom int
}

func NewViewer(store ObjectStore) *Viewer {
	return &Viewer{store: store, zoom: DefaultZoom}
}

// Open shows doc and returns its URL.
func (v *Viewer) Open(doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", ErrEmptyDocument
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.release(); err != nil {
		return "", err
	}

	url, err := v.store.Create(doc.Data, doc.ContentType)
	if err != nil {
		return "", fmt.Errorf("create object url: %w", err)
	}
	v.url = url
	v.doc = doc.Name
	v.zoom = DefaultZoom
	return url, nil
}

func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.release()
}

func (v *Viewer) release() error {
	if v.url == "" {
		return nil
	}
	url := v.url
	v.url = ""
	v.doc = ""
	if err := v.store.Revoke(url); err != nil {
		return fmt.Errorf("revoke object url: %w", err)
	}
	return nil
}

// URL of the open document, "" when closed.
func (v *Viewer) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *Viewer) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

func (v *Viewer) Zoom() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *Viewer) ZoomIn() int  { return v.SetZoom(v.Zoom() + ZoomStep) }
func (v *Viewer) ZoomOut() int { return v.SetZoom(v.Zoom() - ZoomStep) }

// SetZoom clamps to [MinZoom, MaxZoom].
func (v *Viewer) SetZoom(z int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = min(max(z, MinZoom), MaxZoom)
	return v.zoom
}

// TempStore writes each object to its own file under Dir and hands out
// file:// URLs. Revoke removes the file.
type TempStore struct {
	Dir string
}

func NewTempStore() (*TempStore, error) {
	dir, err := os.MkdirTemp("", "fleet-docs-")
	if err != nil {
		return nil, err
	}
	return &TempStore{Dir: dir}, nil
}

func (s *TempStore) Create(data []byte, contentType string) (string, error) {
	path := filepath.Join(s.Dir, uuid.NewString()+extension(contentType))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return "file://" + path, nil
}

func (s *TempStore) Revoke(url string) error {
	path := url[len("file://"):]
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Cleanup removes Dir and anything left in it.
func (s *TempStore) Cleanup() error {
	return os.RemoveAll(s.Dir)
}

func extension(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ""
}
