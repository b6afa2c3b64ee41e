package image

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com/a.png":  true,
		"/home/me/a.png":            false,
		"ftp://example.com/a.png":   false,
	}
	for in, want := range tests {
		if got := IsRemote(in); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCacheFilename(t *testing.T) {
	a := cacheFilename("https://example.com/wall.PNG?size=large")
	if !strings.HasSuffix(a, ".png") {
		t.Errorf("cacheFilename() = %q, want .png suffix", a)
	}
	if b := cacheFilename("https://example.com/wall.PNG?size=large"); a != b {
		t.Errorf("cacheFilename() not deterministic: %q vs %q", a, b)
	}
	if got := cacheFilename("https://example.com/image"); !strings.HasSuffix(got, ".jpg") {
		t.Errorf("cacheFilename() = %q, want .jpg default", got)
	}
}

func TestCacheRemote(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(3, 3, color.NRGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasPrefix(r.UserAgent(), UserAgentName+"/") {
			t.Errorf("User-Agent = %q", r.UserAgent())
		}
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	dir := t.TempDir()
	opts := CacheOptions{Dir: dir, Client: srv.Client()}

	path, err := CacheRemote(context.Background(), srv.URL+"/wall.png", opts)
	if err != nil {
		t.Fatalf("CacheRemote() error = %v", err)
	}
	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load(cached) error = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if _, err := CacheRemote(context.Background(), srv.URL+"/wall.png", opts); err != nil {
		t.Fatalf("cached CacheRemote() error = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	opts.Refresh = true
	if _, err := CacheRemote(context.Background(), srv.URL+"/wall.png", opts); err != nil {
		t.Fatalf("refresh CacheRemote() error = %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times after refresh, want 2", hits.Load())
	}

	if _, err := CacheRemote(context.Background(), srv.URL+"/missing.png", opts); err == nil {
		t.Error("CacheRemote() of a 404 should fail")
	}
	if _, err := CacheRemote(context.Background(), "file:///etc/passwd", opts); err == nil {
		t.Error("CacheRemote() of a non-HTTP URL should fail")
	}
}

func TestCacheRemoteRejectsNonImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(2, 2, color.NRGBA{G: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	var serveImage atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if serveImage.Load() {
			_, _ = w.Write(buf.Bytes())
			return
		}
		_, _ = w.Write([]byte("<html><body>rate limited</body></html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	opts := CacheOptions{Dir: dir, Client: srv.Client()}
	url := srv.URL + "/wall.png"

	if _, err := CacheRemote(context.Background(), url, opts); err == nil {
		t.Fatal("CacheRemote() accepted an HTML page")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir holds %d entries after a bad download, want 0", len(entries))
	}

	// A later run without --refresh downloads again instead of reusing junk.
	serveImage.Store(true)
	path, err := CacheRemote(context.Background(), url, opts)
	if err != nil {
		t.Fatalf("CacheRemote() error = %v", err)
	}
	if err := ValidateImagePath(path); err != nil {
		t.Errorf("cached file invalid: %v", err)
	}
}

func TestCacheRemoteReplacesCorruptCache(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(2, 2, color.NRGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/wall.png"
	stale := filepath.Join(dir, cacheFilename(url))
	if err := os.WriteFile(stale, []byte("trunc"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := CacheRemote(context.Background(), url, CacheOptions{Dir: dir, Client: srv.Client()})
	if err != nil {
		t.Fatalf("CacheRemote() error = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	if err := ValidateImagePath(path); err != nil {
		t.Errorf("cached file invalid: %v", err)
	}
}
