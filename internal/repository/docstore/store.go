// Package docstore persists whole JSON documents to single files. Every
// mutation rewrites the full document; there is no locking and no
// cross-document atomicity.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Collection manages one document of type T at a fixed path. NewEmpty
// produces the zero document written when the file is missing or
// unreadable as JSON.
type Collection[T any] struct {
	path     string
	newEmpty func() T
}

func NewCollection[T any](path string, newEmpty func() T) *Collection[T] {
	return &Collection[T]{
		path:     path,
		newEmpty: newEmpty,
	}
}

func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the document. A missing or corrupt file materializes the
// empty document on disk and returns it.
func (c *Collection[T]) Load() (T, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.reset()
		}

		var zero T
		return zero, fmt.Errorf("os.ReadFile -> %w", err)
	}

	var doc T
	if err = json.Unmarshal(raw, &doc); err != nil {
		return c.reset()
	}

	return doc, nil
}

// Save rewrites the whole document file.
func (c *Collection[T]) Save(doc T) error {
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent -> %w", err)
	}

	if err = os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile -> %w", err)
	}

	return nil
}

func (c *Collection[T]) reset() (T, error) {
	doc := c.newEmpty()
	if err := c.Save(doc); err != nil {
		var zero T
		return zero, fmt.Errorf("c.Save -> %w", err)
	}

	return doc, nil
}

// EnsureDir creates the data directory the collections live under.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return nil
}

// Filepath joins the data dir and a document filename.
func Filepath(dir, name string) string {
	return filepath.Join(dir, name)
}
