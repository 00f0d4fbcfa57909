// Package session persists conversation logs as flat JSON records. Writes
// are atomic per session (temp file plus rename), so a failed save never
// leaves a partial history behind and never corrupts the in-memory log.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"roundtable/team"
)

// PersistenceError reports a failed history write or read.
type PersistenceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error { return e.Err }

// FileStore saves and loads conversation logs on the local file system.
type FileStore struct{}

// NewFileStore constructs a FileStore.
func NewFileStore() *FileStore { return &FileStore{} }

// Save serializes the log as an ordered JSON array of message records. The
// write goes to a temp file in the destination directory first and is
// renamed into place, so the destination is either the previous content or
// the complete new history.
func (s *FileStore) Save(log *team.ConversationLog, path string) error {
	data, err := json.MarshalIndent(log.Messages(), "", "  ")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Load reads a history file back into a conversation log, validating the
// sequence ordering. Content and order round-trip byte-identically through
// Save and Load.
func (s *FileStore) Load(path string) (*team.ConversationLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	var msgs []team.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	log, err := team.FromMessages(msgs)
	if err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	return log, nil
}
