package image

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/jmylchreest/themix/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "themix"

	// DefaultFetchTimeout bounds a single wallpaper download.
	DefaultFetchTimeout = 30 * time.Second

	// maxRemoteSize caps downloaded wallpapers.
	maxRemoteSize = 64 << 20
)

// IsRemote reports whether path is an HTTP(S) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/themix/wallpapers.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "themix", "wallpapers")
}

// CacheOptions configures CacheRemote.
type CacheOptions struct {
	// Dir is where downloads are stored. Empty means DefaultCacheDir.
	Dir string
	// Refresh downloads again even when a cached copy exists.
	Refresh bool
	// Timeout bounds the request. Zero means DefaultFetchTimeout.
	Timeout time.Duration
	// Client overrides the HTTP client.
	Client *http.Client
}

// CacheRemote downloads url into the cache and returns the local path. The
// file name is derived from the URL so repeated calls reuse the download.
// The theme's wallpaper link points at this file.
func CacheRemote(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if !IsRemote(url) {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, cacheFilename(url))
	if !opts.Refresh {
		if err := ValidateImagePath(path); err == nil {
			return path, nil
		}
	}

	data, err := fetch(ctx, url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := storeImage(dir, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// storeImage writes data to path through a temp file in dir. Data that does
// not decode as an image is discarded and never replaces path.
func storeImage(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cached image: %w", err)
	}

	if err := ValidateImagePath(tmpPath); err != nil {
		return fmt.Errorf("downloaded file is not an image: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace cached image: %w", err)
	}
	tmpPath = ""
	return nil
}

func fetch(ctx context.Context, url string, opts CacheOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxRemoteSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxRemoteSize)
	}
	return data, nil
}

// cacheFilename hashes the URL and keeps its image extension, defaulting
// to .jpg.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if !IsImageFile("x" + ext) {
		ext = ".jpg"
	}

	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}
