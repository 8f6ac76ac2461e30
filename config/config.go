package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"blockpad-cli/fileaccess"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("Unable to determine user home directory")
	}

	err = os.MkdirAll(filepath.Join(homeDir, ".blockpad"), os.ModePerm)
	if err != nil {
		panic("Unable to create .blockpad directory")
	}

	ConfigFilePath = filepath.Join(homeDir, ".blockpad", "config.yml")
	HistoryFilePath = filepath.Join(homeDir, ".blockpad", "history.yml")
	DefaultDownloadsDir = filepath.Join(homeDir, ".blockpad", "downloads")
}

var (
	ConfigFilePath      string
	HistoryFilePath     string
	DefaultDownloadsDir string
)

// maxRecentDestinations caps the recent-destination list offered by the
// save picker.
const maxRecentDestinations = 8

// Config represents the persisted application configuration.
type Config struct {
	LastTitle          string                   `yaml:"last_title"`
	LastDestination    *fileaccess.Destination  `yaml:"last_destination,omitempty"`
	RecentDestinations []fileaccess.Destination `yaml:"recent_destinations"`
	DownloadsDir       string                   `yaml:"downloads_dir"`
	LastUpdated        time.Time                `yaml:"last_updated"`
}

// readConfig reads the configuration from the config file
// This is private - use Manager methods instead
func readConfig() (Config, error) {
	var config Config
	data, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(data, &config)
	return config, err
}

// writeConfig writes the configuration to the config file
// This is private - use Manager methods instead
func writeConfig(config Config) error {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(ConfigFilePath, data, 0600)
}
