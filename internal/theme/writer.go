// Package theme writes generated palettes into theme directories.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themix/internal/colour"
)

// ColorsFile is the document written into every theme directory.
const ColorsFile = "colors.yaml"

// ErrInvalidName is returned for theme names that are not a single path element.
var ErrInvalidName = errors.New("invalid theme name")

// DefaultOutputDir returns $XDG_CONFIG_HOME/themes.
func DefaultOutputDir() string {
	return filepath.Join(xdg.ConfigHome, "themes")
}

// ThemeDir returns the directory for theme name under outputDir.
func ThemeDir(outputDir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(outputDir, name), nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Theme directories are read by other tools
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Writer serialises palettes to colors.yaml.
type Writer struct {
	alpha  float64
	logger hclog.Logger
}

// NewWriter creates a Writer. alpha is used for rgba values; a nil logger
// disables logging.
func NewWriter(alpha float64, logger hclog.Logger) *Writer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Writer{alpha: alpha, logger: logger}
}

// Encode renders p as YAML.
func (w *Writer) Encode(p *colour.Palette) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(p, w.alpha)); err != nil {
		return nil, fmt.Errorf("failed to encode palette: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode palette: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes p into dir/colors.yaml, replacing any previous file, and
// returns the path written.
func (w *Writer) Write(p *colour.Palette, dir string) (string, error) {
	data, err := w.Encode(p)
	if err != nil {
		return "", err
	}

	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ColorsFile)
	tmp, err := os.CreateTemp(dir, ".colors-*.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", ColorsFile, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to chmod %s: %w", ColorsFile, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", ColorsFile, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", ColorsFile, err)
	}
	tmpPath = ""

	w.logger.Debug("wrote palette", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return path, nil
}

// WallpaperLinkName returns the link name for an image path: wallpaper.jpg
// for .jpg/.jpeg, otherwise "wallpaper" plus the lower-cased extension.
func WallpaperLinkName(imagePath string) string {
	ext := strings.ToLower(filepath.Ext(imagePath))
	switch ext {
	case ".jpg", ".jpeg":
		return "wallpaper.jpg"
	default:
		return "wallpaper" + ext
	}
}

// LinkWallpaper points dir/wallpaper.<ext> at imagePath, replacing any
// existing file or link. imagePath is made absolute first.
func LinkWallpaper(dir, imagePath string) (string, error) {
	target, err := filepath.Abs(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve wallpaper path: %w", err)
	}

	link := filepath.Join(dir, WallpaperLinkName(target))
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			return "", fmt.Errorf("failed to remove old wallpaper link: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to inspect wallpaper link: %w", err)
	}

	if err := os.Symlink(target, link); err != nil {
		return "", fmt.Errorf("failed to link wallpaper: %w", err)
	}
	return link, nil
}
