package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const rcName = ".bzlrc.yaml"

// AppPaths captures canonical locations used by bzl: the per-user cache
// root, the diagnostic log directory, and the rc files that supply
// persisted defaults.
type AppPaths struct {
	CacheDir      string
	LogsDir       string
	HomeRC        string
	WorkspaceRoot string
	WorkspaceRC   string
}

// Resolve determines all well-known paths. The cache root honors
// XDG_CACHE_HOME and falls back to ~/.cache. The workspace root is found
// by walking up from the current working directory; it is empty when the
// caller is not inside a Bazel workspace.
func Resolve() (AppPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppPaths{}, fmt.Errorf("detect user home: %w", err)
	}

	cacheRoot := os.Getenv("XDG_CACHE_HOME")
	if cacheRoot == "" {
		cacheRoot = filepath.Join(home, ".cache")
	}
	cacheDir := filepath.Join(cacheRoot, "bzl")

	cwd, err := os.Getwd()
	if err != nil {
		return AppPaths{}, fmt.Errorf("resolve working directory: %w", err)
	}

	ap := AppPaths{
		CacheDir: cacheDir,
		LogsDir:  filepath.Join(cacheDir, "logs"),
		HomeRC:   filepath.Join(home, rcName),
	}

	if root := FindWorkspaceRoot(cwd); root != "" {
		ap.WorkspaceRoot = root
		ap.WorkspaceRC = filepath.Join(root, rcName)
	}

	return ap, nil
}

// FindWorkspaceRoot walks up from dir looking for the first directory
// containing a WORKSPACE or MODULE.bazel file. Returns "" when none is
// found.
func FindWorkspaceRoot(dir string) string {
	for {
		for _, marker := range []string{"WORKSPACE", "MODULE.bazel"} {
			if ok, _ := FileExists(filepath.Join(dir, marker)); ok {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RCFiles returns the rc files that exist, in precedence order: the home
// rc first, then the workspace rc so its values override.
func (p AppPaths) RCFiles() []string {
	var files []string
	if ok, _ := FileExists(p.HomeRC); ok {
		files = append(files, p.HomeRC)
	}
	if p.WorkspaceRC != "" {
		if ok, _ := FileExists(p.WorkspaceRC); ok {
			files = append(files, p.WorkspaceRC)
		}
	}
	return files
}

// NearestRC returns the rc file that writes should target: the workspace
// rc when the caller is inside a workspace, otherwise the home rc.
func (p AppPaths) NearestRC() string {
	if p.WorkspaceRC != "" {
		return p.WorkspaceRC
	}
	return p.HomeRC
}

// EnsureCacheDir creates the cache directory hierarchy.
func (p AppPaths) EnsureCacheDir() error {
	if err := os.MkdirAll(p.CacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	return nil
}

// EnsureLogsDir creates the log directory hierarchy.
func (p AppPaths) EnsureLogsDir() error {
	if err := os.MkdirAll(p.LogsDir, 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
