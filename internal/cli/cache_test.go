package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nagyist/rover-android/pkg/cache"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rover.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCachePath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir := t.TempDir()

	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"default", "", filepath.Join(xdg, "rover")},
		{"configured dir", "[cache]\ndir = \"" + filepath.ToSlash(dir) + "\"\n", filepath.ToSlash(dir)},
		{"redis", "[cache]\nbackend = \"redis\"\nredis_addr = \"cache:6379\"\nredis_db = 2\n", "redis://cache:6379/2 rover:*"},
		{"disabled", "[cache]\nbackend = \"none\"\n", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "cache", "path", "--config", writeConfig(t, tt.config))
			if err != nil {
				t.Fatalf("cache path error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("cache path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"layout:a", "layout:b", "artifact:c"} {
		if err := fc.Set(context.Background(), key, []byte("{}"), 0); err != nil {
			t.Fatal(err)
		}
	}
	cfg := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	clearCache := func() string {
		var status bytes.Buffer
		c := New(&bytes.Buffer{}, LogInfo)
		root := c.RootCommand()
		root.SetArgs([]string{"cache", "clear", "--config", cfg})
		defer swapStdout(&status)()
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("cache clear error: %v", err)
		}
		return status.String()
	}

	if got := clearCache(); !strings.Contains(got, "Cleared 3 cached entries") {
		t.Errorf("first clear printed %q", got)
	}
	if _, ok, _ := fc.Get(context.Background(), "layout:a"); ok {
		t.Error("entry survived cache clear")
	}
	if got := clearCache(); !strings.Contains(got, "Cache is empty") {
		t.Errorf("second clear printed %q", got)
	}
}

func TestCacheClearDisabled(t *testing.T) {
	var status bytes.Buffer
	defer swapStdout(&status)()

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear", "--config", writeConfig(t, "[cache]\nbackend = \"none\"\n")})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(status.String(), "Caching is disabled") {
		t.Errorf("output = %q", status.String())
	}
}
