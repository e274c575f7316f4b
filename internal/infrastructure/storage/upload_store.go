// Package storage persists uploaded credential artifacts on local disk,
// enforcing the size cap and content-type allow-list before anything is
// written.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

// Rejection errors surface to clients as validation failures.
var ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
var ErrFileTypeNotAllowed = errors.New("invalid file type. Only PDF, TXT, and images are allowed")

// allowedTypes is the accepted artifact allow-list. Detection is done by
// sniffing content, not by trusting the client-declared Content-Type.
var allowedTypes = []string{
	"application/pdf",
	"text/plain",
	"image/jpeg",
	"image/png",
}

// UploadStore writes accepted artifacts to a directory on disk.
type UploadStore struct {
	dir      string
	maxBytes int64
}

// NewUploadStore creates the upload directory if needed and returns a store
// bound to it.
func NewUploadStore(dir string, maxBytes int64) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload store: create dir: %w", err)
	}
	return &UploadStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save validates and persists one uploaded artifact. The stored filename is
// prefixed with nanoseconds so re-uploads never collide.
func (s *UploadStore) Save(originalName string, r io.Reader) (*ports.UploadedFile, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("upload store: read: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	detected := mimetype.Detect(data)
	if !typeAllowed(detected) {
		return nil, ErrFileTypeNotAllowed
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeName(originalName))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("upload store: write: %w", err)
	}

	return &ports.UploadedFile{
		OriginalName: originalName,
		StoredPath:   path,
		ContentType:  baseType(detected),
	}, nil
}

func typeAllowed(m *mimetype.MIME) bool {
	for _, allowed := range allowedTypes {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}

// baseType strips mimetype's charset parameters (e.g. "text/plain; charset=utf-8").
func baseType(m *mimetype.MIME) string {
	base, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimSpace(base)
}

// sanitizeName reduces a client-supplied filename to a safe base name.
func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	return strings.ReplaceAll(base, " ", "_")
}
