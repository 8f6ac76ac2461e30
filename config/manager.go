package config

import (
	"time"

	"blockpad-cli/fileaccess"
)

// Manager handles configuration operations
type Manager struct{}

// NewManager creates a new config manager
func NewManager() *Manager {
	return &Manager{}
}

// LastDestination returns the stored save destination, if any.
func (m *Manager) LastDestination() (fileaccess.Destination, bool) {
	cfg, err := readConfig()
	if err != nil || cfg.LastDestination == nil {
		return fileaccess.Destination{}, false
	}
	return *cfg.LastDestination, true
}

// LastTitle returns the title of the most recently saved project.
func (m *Manager) LastTitle() string {
	cfg, err := readConfig()
	if err != nil {
		return ""
	}
	return cfg.LastTitle
}

// RecentDestinations returns the recent save destinations, most recent first.
func (m *Manager) RecentDestinations() []fileaccess.Destination {
	cfg, err := readConfig()
	if err != nil {
		return nil
	}
	return cfg.RecentDestinations
}

// DownloadsDir returns the configured downloads directory, falling back
// to the default under the config directory.
func (m *Manager) DownloadsDir() string {
	cfg, err := readConfig()
	if err != nil || cfg.DownloadsDir == "" {
		return DefaultDownloadsDir
	}
	return cfg.DownloadsDir
}

// UpdateLastDestination stores the destination of a completed save and
// promotes it to the front of the recent list, preserving other settings.
func (m *Manager) UpdateLastDestination(dest fileaccess.Destination) error {
	cfg, err := readConfig()
	if err != nil {
		// If config doesn't exist, create new one
		cfg = Config{}
	}

	d := dest
	cfg.LastDestination = &d
	cfg.RecentDestinations = promote(cfg.RecentDestinations, dest)
	cfg.LastUpdated = time.Now()

	return writeConfig(cfg)
}

// UpdateLastTitle stores the title of the most recently saved project.
func (m *Manager) UpdateLastTitle(title string) error {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}

	cfg.LastTitle = title
	cfg.LastUpdated = time.Now()

	return writeConfig(cfg)
}

// promote moves dest to the front of the list, dropping duplicates and
// capping the length.
func promote(recent []fileaccess.Destination, dest fileaccess.Destination) []fileaccess.Destination {
	result := []fileaccess.Destination{dest}
	for _, d := range recent {
		if d.Path == dest.Path {
			continue
		}
		result = append(result, d)
		if len(result) == maxRecentDestinations {
			break
		}
	}
	return result
}
