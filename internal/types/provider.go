package types

// Provider abstracts file access for the profiler so that discovery can
// run against the local file system or an in-memory tree in tests.
type Provider interface {
	// ListDir returns the entries of a directory in name order.
	ListDir(path string) ([]File, error)

	// Exists reports whether a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether the path names a directory.
	IsDir(path string) (bool, error)

	// ReadFile reads file content as bytes.
	ReadFile(path string) ([]byte, error)

	// GetBasePath returns the root path this provider serves.
	GetBasePath() string
}

// File is one directory entry as seen by a Provider.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int64  `json:"size"`
}
