package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rentaride/client-go/internal/core/domain"
)

// File persists the session slots as two files in a directory, the durable
// analog of the browser's per-origin storage. Writes are whole-file
// replacements; concurrent writers within one process are serialized by a
// mutex, across processes last write wins.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile returns a store rooted at dir, creating it when missing.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) credentialPath() string {
	return filepath.Join(f.dir, domain.StorageKeyCredential)
}

func (f *File) userPath() string {
	return filepath.Join(f.dir, domain.StorageKeyUser+".json")
}

// Save overwrites both slots. An empty credential removes the credential
// file while keeping the user record.
func (f *File) Save(_ context.Context, cred domain.Credential, user *domain.UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if cred == "" {
		if err := removeIfPresent(f.credentialPath()); err != nil {
			return err
		}
	} else if err := os.WriteFile(f.credentialPath(), []byte(cred), 0o600); err != nil {
		return err
	}
	return os.WriteFile(f.userPath(), data, 0o600)
}

// Credential returns the stored token, or empty when absent.
func (f *File) Credential(_ context.Context) (domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.credentialPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return domain.Credential(data), nil
}

// User returns the cached record, failing soft on absent or corrupt bytes.
func (f *File) User(_ context.Context) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.userPath())
	if err != nil {
		return nil, nil
	}

	var user domain.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Clear removes both slots.
func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := removeIfPresent(f.credentialPath()); err != nil {
		return err
	}
	return removeIfPresent(f.userPath())
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
