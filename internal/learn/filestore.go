package learn

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore persists learned corrections as JSON lines in a local file.
// The whole file is rewritten on Save so that repeat confirmations update
// their existing line in place; at the scale of a personal correction list
// this is far simpler than a real database and plenty fast.
// Thread-safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore that reads and writes the given path.
// The file is created on first Save if it does not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements [Store.Save].
func (fs *FileStore) Save(ctx context.Context, c Correction) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	all, err := fs.readAll()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	updated := false
	for i := range all {
		if sameCorrection(all[i], c) {
			all[i].LeftContext = c.LeftContext
			all[i].RightContext = c.RightContext
			all[i].TimesApplied++
			all[i].Confidence = bumpConfidence(all[i].Confidence)
			all[i].UpdatedAt = now
			updated = true
			break
		}
	}
	if !updated {
		c.TimesApplied = 1
		c.Confidence = initialConfidence
		c.CreatedAt = now
		c.UpdatedAt = now
		all = append(all, c)
	}

	return fs.writeAll(all)
}

// All implements [Store.All].
func (fs *FileStore) All(ctx context.Context) ([]Correction, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readAll()
}

// Remove implements [Store.Remove].
func (fs *FileStore) Remove(ctx context.Context, original, corrected string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	all, err := fs.readAll()
	if err != nil {
		return err
	}

	kept := all[:0]
	removed := false
	for _, c := range all {
		if strings.EqualFold(c.Original, original) && strings.EqualFold(c.Corrected, corrected) {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return ErrNotFound
	}
	return fs.writeAll(kept)
}

// readAll loads every JSON line from the store file. A missing file is an
// empty store, not an error.
func (fs *FileStore) readAll() ([]Correction, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("learn: open file store: %w", err)
	}
	defer f.Close()

	var all []Correction
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var c Correction
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("learn: decode file store line: %w", err)
		}
		all = append(all, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("learn: read file store: %w", err)
	}
	return all, nil
}

// writeAll atomically replaces the store file with the given corrections.
func (fs *FileStore) writeAll(all []Correction) error {
	tmp := fs.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("learn: open temp file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, c := range all {
		data, err := json.Marshal(c)
		if err != nil {
			f.Close()
			return fmt.Errorf("learn: marshal correction: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			f.Close()
			return fmt.Errorf("learn: write file store: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("learn: flush file store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("learn: close file store: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("learn: replace file store: %w", err)
	}
	return nil
}

// sameCorrection reports whether a and b map the same original to the same
// corrected text (case-insensitive).
func sameCorrection(a, b Correction) bool {
	return strings.EqualFold(a.Original, b.Original) && strings.EqualFold(a.Corrected, b.Corrected)
}
