package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pagefind/internal/domain"
)

var ErrNotRegular = errors.New("not a regular file")

// Load reads a text document from disk
func Load(path string) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return &domain.Document{Name: path, Text: string(data)}, nil
}

// Title returns a short name for display
func Title(doc *domain.Document) string {
	if doc == nil || doc.Name == "" {
		return "[no document]"
	}
	return filepath.Base(doc.Name)
}
