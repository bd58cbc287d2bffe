package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalStorage keeps generated files (backups, exports) on the local filesystem
type LocalStorage struct {
	basePath string
	now      func() time.Time
}

// Entry describes a stored file
type Entry struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, now: time.Now}, nil
}

// UploadFromBytes saves bytes under subDir/YYYY/MM and returns the relative path.
// The file name is kept, prefixed by a timestamp so repeated saves do not collide.
func (s *LocalStorage) UploadFromBytes(data []byte, filename string, subDir string) (string, error) {
	now := s.now()
	dir := filepath.Join(s.basePath, subDir, now.Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", now.UTC().Format("20060102T150405.000000000"), filepath.Base(filename))
	filePath := filepath.Join(dir, name)

	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Download returns a file for reading
func (s *LocalStorage) Download(relativePath string) (io.ReadCloser, error) {
	filePath, err := s.resolve(relativePath)
	if err != nil {
		return nil, err
	}
	return os.Open(filePath)
}

// Delete removes a file
func (s *LocalStorage) Delete(relativePath string) error {
	filePath, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	filePath, err := s.resolve(relativePath)
	if err != nil {
		return false
	}
	_, err = os.Stat(filePath)
	return err == nil
}

// List returns the files under subDir, newest first
func (s *LocalStorage) List(subDir string) ([]Entry, error) {
	root := filepath.Join(s.basePath, subDir)
	entries := make([]Entry, 0)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(s.basePath, path)
		entries = append(entries, Entry{Path: rel, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", subDir, err)
	}

	// names start with a timestamp
	sort.Slice(entries, func(i, j int) bool {
		return filepath.Base(entries[i].Path) > filepath.Base(entries[j].Path)
	})
	return entries, nil
}

// Prune keeps the newest keep files under subDir and removes the rest
func (s *LocalStorage) Prune(subDir string, keep int) (int, error) {
	entries, err := s.List(subDir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := keep; i < len(entries); i++ {
		if err := s.Delete(entries[i].Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}

// resolve rejects paths escaping the base directory
func (s *LocalStorage) resolve(relativePath string) (string, error) {
	clean := filepath.Clean("/" + relativePath)
	if clean == "/" {
		return "", fmt.Errorf("invalid path %q", relativePath)
	}
	return filepath.Join(s.basePath, clean), nil
}
