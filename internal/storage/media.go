// Package storage keeps uploaded packing videos as plain files under a
// single upload directory.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrAssetNotFound   = errors.New("asset not found")
)

type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &MediaStore{dir: dir}, nil
}

// AssetName derives the stored filename from the transport barcode and
// the wall clock, second granularity. Uploads keep their extension;
// anything without one becomes .mp4.
func AssetName(transportBarcode, originalFilename string, now time.Time) string {
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".mp4"
	}

	return fmt.Sprintf("%s_%s%s", transportBarcode, now.Format("20060102_150405"), ext)
}

// Save writes the asset under the given name and reports bytes written.
func (m *MediaStore) Save(name string, src io.Reader) (int64, error) {
	path, err := m.safePath(name)
	if err != nil {
		return 0, err
	}

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("os.Create -> %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return 0, fmt.Errorf("io.Copy -> %w", err)
	}

	return written, nil
}

// Path resolves the on-disk location of a stored asset, verifying it
// exists and that the name cannot escape the upload directory.
func (m *MediaStore) Path(name string) (string, error) {
	path, err := m.safePath(name)
	if err != nil {
		return "", err
	}

	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrAssetNotFound
		}

		return "", fmt.Errorf("os.Stat -> %w", err)
	}

	return path, nil
}

// Remove deletes the asset best-effort: a missing file is fine, any
// other failure is logged and swallowed.
func (m *MediaStore) Remove(name string) {
	path, err := m.safePath(name)
	if err != nil {
		zap.L().Warn("refusing to remove media asset", zap.String("filename", name), zap.Error(err))
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zap.L().Error("failed to remove media asset", zap.String("filename", name), zap.Error(err))
	}
}

// safePath rejects names that would escape the upload directory.
func (m *MediaStore) safePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidFilename
	}

	return filepath.Join(m.dir, name), nil
}
