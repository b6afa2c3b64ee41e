package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReadDocument parses a colors.yaml file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// Entry is a theme directory found under an output directory.
type Entry struct {
	Name     string
	Dir      string
	Document *Document
	// Err is set when colors.yaml exists but could not be read.
	Err error
}

// List returns the themes under outputDir in name order. Directories
// without a colors.yaml are skipped. A missing outputDir yields no entries.
func List(outputDir string) ([]Entry, error) {
	dirents, err := os.ReadDir(outputDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirents {
		if !de.IsDir() {
			continue
		}
		dir := filepath.Join(outputDir, de.Name())
		path := filepath.Join(dir, ColorsFile)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		doc, err := ReadDocument(path)
		entries = append(entries, Entry{Name: de.Name(), Dir: dir, Document: doc, Err: err})
	}
	return entries, nil
}
