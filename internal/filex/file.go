// Package filex contains filesystem helpers: preparing the local data
// directory and reading documents picked for upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrEmptyDocument = errors.New("document is empty")

// Document is a local file loaded into memory for upload.
type Document struct {
	Name     string
	MimeType string
	Data     []byte
}

// EnsureParentDir creates the directory that will hold path, if any.
// It returns the absolute directory path.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ReadDocument loads the file at path and guesses its MIME type from the name.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}

	name := filepath.Base(path)
	return &Document{Name: name, MimeType: GuessMimeType(name), Data: data}, nil
}

// GuessMimeType maps the handful of document types accepted for prescriptions.
// Anything else is reported as application/octet-stream.
func GuessMimeType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
