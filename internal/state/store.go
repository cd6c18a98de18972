// Package state persists the last-warned percentage per session. The whole
// contract is read-last-value / write-value / delete-if-present on one small
// file per session key.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// SessionKey derives a deterministic short identifier from the transcript's
// storage location. Not used for security, only to keep marker filenames
// stable and distinct per session.
func SessionKey(transcriptPath string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(transcriptPath))
}

// Store reads and writes session markers under a single state directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) markerPath(key string) string {
	return filepath.Join(s.dir, "warned-"+key)
}

// LastWarnedPercent returns the percentage at which an advisory was last
// issued for the session, or 0 if there is no marker or its content is not
// an integer.
func (s *Store) LastWarnedPercent(key string) int {
	b, err := os.ReadFile(s.markerPath(key))
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0
	}
	return n
}

// MarkWarned records percent as the session's last-warned level, creating
// the state directory on first use. Overwrites any previous marker.
func (s *Store) MarkWarned(key string, percent int) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	path := s.markerPath(key)
	if err := os.WriteFile(path, []byte(strconv.Itoa(percent)), 0o644); err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	return nil
}

// Clear removes the session's marker. A missing marker is not an error.
func (s *Store) Clear(key string) error {
	err := os.Remove(s.markerPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove marker: %w", err)
	}
	return nil
}
