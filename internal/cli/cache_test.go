package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fiberarts/fiberfind/pkg/config"
)

func testCLI(t *testing.T, cacheDir string) *CLI {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{}
	c.cfg.Cache.Dir = cacheDir
	return c
}

func TestCacheClearRemovesEntries(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "http", "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := testCLI(t, dir)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	c := testCLI(t, filepath.Join(t.TempDir(), "never-created"))
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Errorf("clearing a missing cache dir should not error: %v", err)
	}
}

func TestNewByteCacheNull(t *testing.T) {
	c := testCLI(t, t.TempDir())
	store, err := c.newByteCache(t.Context(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get(t.Context(), "k"); ok {
		t.Error("null cache must never hit")
	}
}

func TestNewByteCacheFile(t *testing.T) {
	dir := t.TempDir()
	c := testCLI(t, dir)
	store, err := c.newByteCache(t.Context(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	data, ok, err := store.Get(t.Context(), "k")
	if err != nil || !ok || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "http")); err != nil {
		t.Errorf("file cache should live under the http subdirectory: %v", err)
	}
}
