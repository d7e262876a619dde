package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

func TestKey(t *testing.T) {
	got := Key(time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC))
	if got != "CA20230502.pdf" {
		t.Errorf("expected %q, got %q", "CA20230502.pdf", got)
	}
}

func TestStore_PutExistsList(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if s.Exists("CA20230512.pdf") {
		t.Fatal("expected empty store")
	}
	for _, name := range []string{"CA20230512.pdf", "CA20230501.pdf"} {
		if err := s.Put(name, strings.NewReader("%PDF-1.4")); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !s.Exists("CA20230512.pdf") {
		t.Error("expected stored file to exist")
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"CA20230501.pdf", "CA20230512.pdf"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, names)
	}

	data, err := os.ReadFile(s.Path("CA20230512.pdf"))
	if err != nil || string(data) != "%PDF-1.4" {
		t.Errorf("unexpected content %q (%v)", data, err)
	}
}

func TestStore_PutFailureLeavesNothing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	readErr := errors.New("connection reset")
	if err := s.Put("CA20230512.pdf", iotest.ErrReader(readErr)); !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if s.Exists("CA20230512.pdf") {
		t.Error("expected no file after a failed write")
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("expected no leftovers, got %d entries", len(entries))
	}
}

func TestStore_PathStripsDirectories(t *testing.T) {
	s := &Store{dir: "/data"}
	if got := s.Path("../../etc/CA20230512.pdf"); got != "/data/CA20230512.pdf" {
		t.Errorf("unexpected path %q", got)
	}
}
