package cache

import (
	"context"
	"encoding/json"
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

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	payload := []byte(`{"blocks":[]}`)
	if err := c.Set(ctx, "layout:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != string(payload) {
		t.Errorf("Get = %q, want %q", data, payload)
	}

	// Delete
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "layout:abc")
	if hit {
		t.Error("expected miss after Delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Negative TTL is already in the past
	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Zero TTL never expires
	if err := c.Set(ctx, "forever", []byte("fresh"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "forever")
	if !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCacheEnvelope(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := "layout:abc"
	if err := c.Set(ctx, key, []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	fc := c.(*FileCache)
	path := fc.path(key)
	if !strings.Contains(path, "/layout/") {
		t.Errorf("layout entries should live under the layout stage dir, got %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read entry file: %v", err)
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("entry file is not a valid envelope: %v", err)
	}
	if e.Version != entryVersion {
		t.Errorf("entry version = %d, want %d", e.Version, entryVersion)
	}
	if e.Stage != "layout" {
		t.Errorf("entry stage = %q, want %q", e.Stage, "layout")
	}
	if e.SavedAt.IsZero() {
		t.Error("entry should record when it was saved")
	}
	if string(e.Data) != "payload" {
		t.Errorf("entry data = %q, want %q", e.Data, "payload")
	}
}

func TestFileCacheRejectsForeignEnvelopes(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()
	fc := c.(*FileCache)

	writeEntry := func(key string, e entry) {
		t.Helper()
		raw, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal entry: %v", err)
		}
		path := fc.path(key)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, raw, 0644); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}

	// Entry written by an older envelope version reads as a miss.
	writeEntry("layout:old", entry{Version: 0, Stage: "layout", Data: []byte("stale")})
	if _, hit, _ := c.Get(ctx, "layout:old"); hit {
		t.Error("foreign envelope version should be a miss")
	}

	// Entry whose recorded stage disagrees with the key reads as a miss.
	writeEntry("layout:misfiled", entry{Version: entryVersion, Stage: "artifact", Data: []byte("wrong")})
	if _, hit, _ := c.Get(ctx, "layout:misfiled"); hit {
		t.Error("misfiled stage should be a miss")
	}

	// Garbage on disk reads as a miss rather than an error.
	path := fc.path("layout:corrupt")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("write corrupt entry: %v", err)
	}
	if _, hit, err := c.Get(ctx, "layout:corrupt"); err != nil || hit {
		t.Errorf("corrupt entry should be a silent miss, got hit=%v err=%v", hit, err)
	}
}

func TestKeyStage(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"layout:abc", "layout"},
		{"artifact:def", "artifact"},
		{"session:1:layout:abc", "session"},
		{"noprefix", "misc"},
		{":empty", "misc"},
	}
	for _, tt := range tests {
		if got := keyStage(tt.key); got != tt.want {
			t.Errorf("keyStage(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey should include options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Kind: "treemap", Width: 100, Height: 268})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Kind: "flex", Width: 100, Height: 268})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// Same inputs produce the same key
	lk3 := k.LayoutKey("hash123", LayoutKeyOpts{Kind: "treemap", Width: 100, Height: 268})
	if lk1 != lk3 {
		t.Error("Identical LayoutKeyOpts should produce identical keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "brutalist"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "brutalist"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Keys carry their stage so backends can group entries by it
	if !strings.HasPrefix(lk1, StageLayout+":") {
		t.Errorf("layout key should carry the layout stage: %s", lk1)
	}
	if !strings.HasPrefix(ak1, StageArtifact+":") {
		t.Errorf("artifact key should carry the artifact stage: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:123:")

	key := scoped.LayoutKey("abc", LayoutKeyOpts{Kind: "treemap"})
	if len(key) < 12 || key[:12] != "session:123:" {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}

	// Scoped and unscoped keys differ
	if key == inner.LayoutKey("abc", LayoutKeyOpts{Kind: "treemap"}) {
		t.Error("scoped key should differ from unscoped key")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if len(key) < 7 || key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
