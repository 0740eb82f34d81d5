package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	boltInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/bolt"
)

func TestSnapshotterRun(t *testing.T) {
	dir := t.TempDir()
	store, err := boltInfra.Open(filepath.Join(dir, "todos.db"), "todos")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	target := filepath.Join(dir, "backup", "todos.snapshot.db")
	s := NewSnapshotter(store, nil, SnapshotConfig{Path: target, Interval: time.Minute})

	if err := s.Run(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("snapshot file should not be empty")
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be cleaned up")
	}
}

func TestSnapshotterNilStore(t *testing.T) {
	s := NewSnapshotter(nil, nil, SnapshotConfig{})
	if err := s.Run(); err != nil {
		t.Errorf("nil store should be a no-op, got %v", err)
	}
}
