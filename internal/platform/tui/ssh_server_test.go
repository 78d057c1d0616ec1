package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHostKeyCreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := resolveHostKey(want)
	if err != nil {
		t.Fatalf("resolveHostKey() failed: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	info, err := os.Stat(filepath.Dir(want))
	if err != nil || !info.IsDir() {
		t.Fatalf("key directory not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("key directory is group/world accessible: %v", perm)
	}
}

func TestResolveHostKeyDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey() failed: %v", err)
	}
	if filepath.Base(got) != "host_key" || filepath.Base(filepath.Dir(got)) != ".starsurge" {
		t.Errorf("default path = %q", got)
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" || cfg.TickRate != 60 || cfg.IdleTimeout <= 0 {
		t.Errorf("defaults = %+v", cfg)
	}
}
