package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage writes objects under a base directory and returns URLs
// served by the /media/ route of this same service.
type DiskStorage struct {
	baseDir       string
	publicBaseURL string
}

func NewDiskStorage(baseDir, publicBaseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	return &DiskStorage{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (d *DiskStorage) Put(_ context.Context, data []byte, path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(clean, "..") {
		return "", errors.New("invalid object path")
	}
	full := filepath.Join(d.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return d.publicBaseURL + "/media" + clean, nil
}

// Dir exposes the base directory for the file-serving route.
func (d *DiskStorage) Dir() string { return d.baseDir }
