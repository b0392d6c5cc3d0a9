package platform

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLockIsExclusive(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "keys.yaml")
	first, err := AcquireLock(storePath)
	if err != nil {
		t.Skipf("loopback unavailable: %v", err)
	}
	defer first.Release()

	if _, err := AcquireLock(storePath); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
	again, err := AcquireLock(storePath)
	if err != nil {
		t.Fatalf("expected lock after release: %v", err)
	}
	_ = again.Release()
}

func TestResolvePathOverride(t *testing.T) {
	got, err := ResolvePath("/tmp/custom.yaml", "keys.yaml")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/tmp/custom.yaml" {
		t.Fatalf("expected override, got %q", got)
	}
}
