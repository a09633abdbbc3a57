// Package gitinfo reads repository metadata for a scanned project. A
// project outside any git repository simply yields no RepoInfo.
package gitinfo

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/petrarca/stack-advisor/internal/types"
)

// Collect reads repository info for the given path. Returns nil when
// the path is not inside a git repository.
func Collect(path string) *types.RepoInfo {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	info := &types.RepoInfo{}

	head, err := repo.Head()
	if err == nil {
		info.Commit = head.Hash().String()[:7]
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Branch = "HEAD"
		}
	}

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}

	if config, err := repo.Config(); err == nil {
		if origin := config.Remotes["origin"]; origin != nil && len(origin.URLs) > 0 {
			info.RemoteURL = origin.URLs[0]
		}
	}

	return info
}

// ProjectID derives a stable identifier for a project root. Projects
// with a git remote hash the normalized remote URL plus the path inside
// the repository, so clones of the same project in different locations
// share an ID. Everything else falls back to hashing the cleaned path.
func ProjectID(path string) string {
	if id := idFromRemote(path); id != "" {
		return id
	}
	hash := sha256.Sum256([]byte(filepath.Clean(path)))
	return hex.EncodeToString(hash[:])[:20]
}

func idFromRemote(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	config, err := repo.Config()
	if err != nil {
		return ""
	}
	origin := config.Remotes["origin"]
	if origin == nil || len(origin.URLs) == 0 {
		return ""
	}

	content := normalizeRemoteURL(origin.URLs[0])

	if worktree, err := repo.Worktree(); err == nil {
		root := worktree.Filesystem.Root()
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
			content += ":" + rel
		}
	}

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])[:20]
}

// normalizeRemoteURL collapses the protocol and suffix variations of
// git remote URLs so https and ssh clones of the same repository hash
// identically.
func normalizeRemoteURL(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "git@")
	url = strings.TrimPrefix(url, "git://")
	url = strings.TrimSuffix(url, ".git")

	// git@host:user/repo to host/user/repo
	if strings.Contains(url, ":") {
		url = strings.Replace(url, ":", "/", 1)
	}

	return strings.TrimSuffix(url, "/")
}
