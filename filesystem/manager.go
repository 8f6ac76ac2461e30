package filesystem

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Manager handles file system operations around saved projects.
type Manager struct{}

// NewManager creates a new filesystem manager
func NewManager() *Manager {
	return &Manager{}
}

// RevealFile opens the platform file explorer at the directory
// containing the given file, so the user can find what was just saved.
func (f *Manager) RevealFile(path string) error {
	return f.OpenFileExplorer(filepath.Dir(path))
}

// OpenFileExplorer opens the file explorer at the specified path
func (f *Manager) OpenFileExplorer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// CreateDirectory creates a directory if it doesn't exist
func (f *Manager) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirectoryExists checks if a directory exists
func (f *Manager) DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FileExists checks if a regular file exists
func (f *Manager) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
