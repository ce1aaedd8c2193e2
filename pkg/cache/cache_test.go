package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "a", []byte("one"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Set(ctx, "b", []byte("two"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, hit, _ := c.Get(ctx, "a")
	if !hit || string(data) != "one" {
		t.Errorf("Get(a) = %q, %v, want one", data, hit)
	}
	data[0] = 'X'
	if again, _, _ := c.Get(ctx, "a"); string(again) != "one" {
		t.Errorf("Get() returned shared storage: %q", again)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get(a) hit after expiry")
	}
	if _, hit, _ := c.Get(ctx, "b"); !hit {
		t.Error("Get(b) missed an entry without ttl")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	_ = c.Delete(ctx, "b")
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("Get(b) hit after Delete")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v, want a miss", hit, err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("data-"+k), time.Hour); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
	data, hit, err := c.Get(ctx, "b")
	if err != nil || !hit || string(data) != "data-b" {
		t.Errorf("Get(b) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("Get(old) hit after expiry")
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries in %s", len(entries), dir)
	}
}

func TestFileCacheDropsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want a miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash() collides on different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	l1 := k.LayoutKey("doc", LayoutKeyOpts{Width: 360, Height: 640})
	l2 := k.LayoutKey("doc", LayoutKeyOpts{Width: 360, Height: 640, PackedTransport: true})
	if l1 == l2 {
		t.Error("LayoutKey() ignores PackedTransport")
	}
	if !strings.HasPrefix(l1, "layout:") {
		t.Errorf("LayoutKey() = %q, want layout: prefix", l1)
	}

	a1 := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", Scale: 1})
	a2 := k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", Scale: 2})
	if a1 == a2 {
		t.Error("ArtifactKey() ignores Scale")
	}
	if a1 != k.ArtifactKey("hash", ArtifactKeyOpts{Format: "png", Scale: 1}) {
		t.Error("ArtifactKey() is not deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(nil, "tenant:")

	opts := LayoutKeyOpts{Width: 100}
	if got, want := scoped.LayoutKey("doc", opts), "tenant:"+inner.LayoutKey("doc", opts); got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}
	aopts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("h", aopts), "tenant:"+inner.ArtifactKey("h", aopts); got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	defer func() { retryDelay = 250 * time.Millisecond }()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err = %v, calls = %d", err, calls)
	}

	plain := errors.New("bad request")
	calls = 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return plain }); err != plain || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then success: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || err.Error() != ErrNetwork.Error() {
		t.Errorf("Retryable() = %v", err)
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable() = true for an unwrapped error")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = 250 * time.Millisecond }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache() error = %v, want %v", err, ErrNetwork)
	}
}

func TestWithTTL(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCache()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return now }

	if got := WithTTL(mem, 0); got != Cache(mem) {
		t.Error("WithTTL(0) wrapped the cache")
	}

	c := WithTTL(mem, time.Minute)
	if err := c.Set(ctx, "key", []byte("v"), TTLArtifact); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() hit after the overriding ttl expired")
	}
}
