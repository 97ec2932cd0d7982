package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const appName = "mdrefs"

// ConfigPaths lists the config files found for one run. Empty fields mean
// no file was found at that layer.
type ConfigPaths struct {
	System   string // /etc/mdrefs/config.yml
	User     string // $XDG_CONFIG_HOME/mdrefs/config.yml
	Project  string // nearest .mdrefs.yml above the working directory
	Explicit string // --config
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{".mdrefs.yml", ".mdrefs.yaml", "mdrefs.yml", "mdrefs.yaml", ".mdrefs.json"}
	dirConfigFiles     = []string{"config.yml", "config.yaml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths looks up the system, user and project config files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigFiles),
		Project: project,
	}
	if xdg.ConfigHome != "" {
		paths.User = firstFile(filepath.Join(xdg.ConfigHome, appName), dirConfigFiles)
	}

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appName)
}

// FindProjectConfig walks from startDir toward the root and returns the first
// project config file. The walk stops after a VCS root or the home
// directory; an empty result means none was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if found := firstFile(dir, projectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
