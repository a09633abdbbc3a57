package provider

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// FSProvider serves project files from the local file system rooted at a
// project directory.
type FSProvider struct {
	rootPath string
}

// NewFSProvider creates a provider rooted at rootPath.
func NewFSProvider(rootPath string) *FSProvider {
	return &FSProvider{rootPath: strings.TrimSuffix(rootPath, "/")}
}

// ListDir returns the entries of a directory in name order. Entries whose
// metadata cannot be read are skipped.
func (p *FSProvider) ListDir(path string) ([]types.File, error) {
	entries, err := os.ReadDir(p.resolve(path))
	if err != nil {
		return nil, err
	}

	files := make([]types.File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		f := types.File{
			Name: entry.Name(),
			Path: filepath.Join(path, entry.Name()),
			Type: "file",
			Size: info.Size(),
		}
		if entry.IsDir() {
			f.Type = "dir"
		}
		files = append(files, f)
	}

	return files, nil
}

// ReadFile reads the content of a file relative to the project root.
func (p *FSProvider) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(p.resolve(path))
}

// Exists reports whether a file or directory exists.
func (p *FSProvider) Exists(path string) (bool, error) {
	_, err := os.Stat(p.resolve(path))
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// IsDir reports whether the path names a directory.
func (p *FSProvider) IsDir(path string) (bool, error) {
	info, err := os.Stat(p.resolve(path))
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// GetBasePath returns the project root this provider serves.
func (p *FSProvider) GetBasePath() string {
	return p.rootPath
}

// resolve maps a project-relative path onto the file system. Absolute
// paths pass through untouched.
func (p *FSProvider) resolve(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if path == "" || path == "." {
		return p.rootPath
	}
	return filepath.Join(p.rootPath, path)
}
