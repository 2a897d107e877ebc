package docview

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
)

type fakeStore struct {
	n       int
	created []string
	revoked []string
	log     []string
}

func (s *fakeStore) Create(data []byte, contentType string) (string, error) {
	s.n++
	url := fmt.Sprintf("blob:%d", s.n)
	s.created = append(s.created, url)
	s.log = append(s.log, "create "+url)
	return url, nil
}

func (s *fakeStore) Revoke(url string) error {
	s.revoked = append(s.revoked, url)
	s.log = append(s.log, "revoke "+url)
	return nil
}

func pdf(name string) Document {
	return Document{Name: name, ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestOpenCloseReleasesExactlyOnce(t *testing.T) {
	store := &fakeStore{}
	v := NewViewer(store)

	url, err := v.Open(pdf("passport"))
	if err != nil {
		t.Fatal(err)
	}
	if len(store.created) != 1 || store.created[0] != url {
		t.Fatalf("created = %v", store.created)
	}

	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store.revoked, []string{url}) {
		t.Errorf("revoked = %v, want [%s]", store.revoked, url)
	}
	if v.URL() != "" {
		t.Errorf("url after close = %q", v.URL())
	}
}

func TestReopenRevokesPreviousFirst(t *testing.T) {
	store := &fakeStore{}
	v := NewViewer(store)

	v.Open(pdf("passport"))
	v.Open(pdf("visa"))
	v.Close()

	want := []string{"create blob:1", "revoke blob:1", "create blob:2", "revoke blob:2"}
	if !reflect.DeepEqual(store.log, want) {
		t.Errorf("log = %v, want %v", store.log, want)
	}
}

func TestOpenEmptyKeepsCurrent(t *testing.T) {
	store := &fakeStore{}
	v := NewViewer(store)
	v.Open(pdf("passport"))

	if _, err := v.Open(Document{Name: "empty"}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("err = %v", err)
	}
	if v.URL() != "blob:1" || len(store.revoked) != 0 {
		t.Errorf("url=%q revoked=%v", v.URL(), store.revoked)
	}
}

func TestZoomClamped(t *testing.T) {
	v := NewViewer(&fakeStore{})
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	if v.Zoom() != MaxZoom {
		t.Errorf("zoom = %d", v.Zoom())
	}
	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	if v.Zoom() != MinZoom {
		t.Errorf("zoom = %d", v.Zoom())
	}

	v.Open(pdf("a"))
	if v.Zoom() != DefaultZoom {
		t.Errorf("open should reset zoom, got %d", v.Zoom())
	}
}

func TestTempStore(t *testing.T) {
	s := &TempStore{Dir: t.TempDir()}
	url, err := s.Create([]byte("data"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "file://") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
	path := strings.TrimPrefix(url, "file://")
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if err := s.Revoke(url); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still there: %v", err)
	}
	if err := s.Revoke(url); err != nil {
		t.Errorf("second revoke: %v", err)
	}
}
