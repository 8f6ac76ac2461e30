package config

import (
	"os"

	"github.com/joho/godotenv"
)

// GetDownloadsDirOverride returns the downloads directory from the
// environment, if set. Takes precedence over the config file so CI and
// scripted runs can redirect exports.
func GetDownloadsDirOverride() string {
	_ = godotenv.Load()
	return os.Getenv("BLOCKPAD_DOWNLOADS_DIR")
}
