package creds

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	if p := s.Load(); p.Access != "" || p.Refresh != "" {
		t.Fatalf("fresh store should load empty pair, got %+v", p)
	}

	if err := s.Save(Pair{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p := s.Load()
	if p.Access != "acc" || p.Refresh != "ref" {
		t.Fatalf("Load = %+v", p)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	if err := s.Save(Pair{Access: "first", Refresh: "r1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(Pair{Access: "second", Refresh: "r2"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p := s.Load(); p.Access != "second" || p.Refresh != "r2" {
		t.Fatalf("Load = %+v", p)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	if err := s.Save(Pair{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Clear()
	if p := s.Load(); p.Access != "" || p.Refresh != "" {
		t.Fatalf("pair should be empty after Clear, got %+v", p)
	}
	s.Clear()
}

func TestTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)
	if err := s.Save(Pair{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, accessFile))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("perm = %o, want 0600", perm)
	}
}
