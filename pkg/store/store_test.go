package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	// Miss before any write
	_, hit, err := s.Get(ctx, "k")
	if err != nil || hit {
		t.Fatalf("Get on empty store: hit=%v err=%v", hit, err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := s.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get after Set: %q hit=%v err=%v", data, hit, err)
	}

	// Overwrite is a full replacement
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	data, _, _ = s.Get(ctx, "k")
	if string(data) != "v2" {
		t.Errorf("overwrite lost: %q", data)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("key survived Delete")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key should be a no-op: %v", err)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	src := []byte("data")
	_ = s.Set(ctx, "k", src)
	src[0] = 'X'

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "data" {
		t.Error("store must copy on Set")
	}
	got[0] = 'Y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "data" {
		t.Error("store must copy on Get")
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Close()

	if _, _, err := s.Get(ctx, "k"); err != ErrClosed {
		t.Errorf("Get after Close: %v, want ErrClosed", err)
	}
	if err := s.Set(ctx, "k", nil); err != ErrClosed {
		t.Errorf("Set after Close: %v, want ErrClosed", err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if _, hit, err := s.Get(ctx, "k"); err != nil || hit {
		t.Fatalf("Get on empty dir: hit=%v err=%v", hit, err)
	}

	if err := s.Set(ctx, "k", []byte(`{"lg":[]}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := s.Get(ctx, "k")
	if err != nil || !hit || string(data) != `{"lg":[]}` {
		t.Fatalf("Get: %q hit=%v err=%v", data, hit, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("key survived Delete")
	}
}

func TestFileStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	defer s.Close()

	_ = s.Set(ctx, "k", []byte("v"))

	// Corrupt the envelope on disk
	hash := Hash([]byte("k"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := s.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt entry should read as a miss: hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := s.Get(ctx, "k"); err != nil || hit {
		t.Error("NullStore must never store anything")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestLayoutKey(t *testing.T) {
	if got := LayoutKey("ventas"); got != "layouts:ventas" {
		t.Errorf("LayoutKey = %q", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length %d, want 64", len(h1))
	}
}
