package msal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
)

// FileCache persists the MSAL token cache as a single file. The library owns
// the serialization format; this only moves bytes.
type FileCache struct {
	path string
}

var _ cache.ExportReplace = (*FileCache)(nil)

func NewFileCache(path string) *FileCache {
	return &FileCache{
		path: path,
	}
}

func (f *FileCache) Replace(_ context.Context, contents cache.Unmarshaler, _ cache.ReplaceHints) error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return contents.Unmarshal(data)
}

func (f *FileCache) Export(_ context.Context, contents cache.Marshaler, _ cache.ExportHints) error {
	data, err := contents.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}
