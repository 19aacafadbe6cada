package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

var (
	// ErrStorageUnavailable means the state file could not be read or written.
	ErrStorageUnavailable = errors.New("state storage unavailable")
	// ErrStateCorrupted means the state file exists but does not hold a
	// supported document.
	ErrStateCorrupted = errors.New("state file corrupted")
	// ErrKeyNotFound is returned by Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")
)

// StateStoreVersion is the schema version of the state file.
const StateStoreVersion = 1

// stateFileData is the serialized form of the state store.
type stateFileData struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// StateStore is a string key-value store persisted as a JSON file. Every Set
// is written through to disk.
type StateStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// NewStateStore creates a store backed by filePath (state.json in the config
// directory when empty). Nothing is read until Load.
func NewStateStore(filePath string) (*StateStore, error) {
	if filePath == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		filePath = filepath.Join(dir, stateFileName)
	}
	return &StateStore{
		filePath: filePath,
		values:   make(map[string]string),
	}, nil
}

// OpenStateStore creates and loads a store. A corrupted file is treated as
// empty and will be replaced on the next Set; the returned error is non-nil
// only when the store cannot be created at all.
func OpenStateStore(filePath string) (*StateStore, error) {
	store, err := NewStateStore(filePath)
	if err != nil {
		return nil, err
	}
	if loadErr := store.Load(); loadErr != nil && !errors.Is(loadErr, ErrStateCorrupted) {
		return store, loadErr
	}
	return store, nil
}

func (s *StateStore) lockFilePath() string {
	return s.filePath + ".lock"
}

// acquireFileLock takes a cross-process advisory lockfile and returns its
// release function.
func (s *StateStore) acquireFileLock() (func(), error) {
	lockPath := s.lockFilePath()

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	const maxRetries = 10
	const retryDelay = 50 * time.Millisecond
	const staleLockAge = 10 * time.Second

	for range maxRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath, staleLockAge) {
			continue
		}
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("could not acquire lock on %s after retries", lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone
// and reports whether it did.
func removeStaleLock(lockPath string, staleLockAge time.Duration) bool {
	info, statErr := os.Stat(lockPath)
	if statErr != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if isLockHeldByLiveProcess(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func isLockHeldByLiveProcess(lockPath string) bool {
	pidData, readErr := os.ReadFile(lockPath)
	if readErr != nil || len(pidData) == 0 {
		return false
	}
	var pid int
	if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes for existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) == nil
}

// Load reads the state file. A missing file leaves the store empty. A file
// that does not parse or carries another version empties the store and
// returns ErrStateCorrupted.
func (s *StateStore) Load() error {
	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("%w: acquiring file lock: %w", ErrStorageUnavailable, lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: reading state file: %w", ErrStorageUnavailable, err)
	}

	var stored stateFileData
	if unmarshalErr := json.Unmarshal(data, &stored); unmarshalErr != nil {
		return fmt.Errorf("%w: %w", ErrStateCorrupted, unmarshalErr)
	}
	if stored.Version != StateStoreVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStateCorrupted, stored.Version, StateStoreVersion)
	}

	for k, v := range stored.Values {
		s.values[k] = v
	}
	return nil
}

// saveLocked writes the state file atomically. Must be called with s.mu held.
func (s *StateStore) saveLocked() error {
	data, err := json.MarshalIndent(stateFileData{
		Version: StateStoreVersion,
		Values:  s.values,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("%w: creating state directory: %w", ErrStorageUnavailable, mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("%w: writing state temp file: %w", ErrStorageUnavailable, writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming state temp file: %w", ErrStorageUnavailable, renameErr)
	}
	return nil
}

// Get returns the value stored under key.
func (s *StateStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return v, nil
}

// Set stores value under key and writes the file. On a write failure the
// in-memory value is kept and ErrStorageUnavailable is returned.
func (s *StateStore) Set(key, value string) error {
	if key == "" {
		return errors.New("state key cannot be empty")
	}

	unlock, lockErr := s.acquireFileLock()
	if lockErr != nil {
		return fmt.Errorf("%w: acquiring file lock: %w", ErrStorageUnavailable, lockErr)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.saveLocked()
}

// FilePath returns the backing file.
func (s *StateStore) FilePath() string {
	return s.filePath
}

// Count returns the number of stored keys.
func (s *StateStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
