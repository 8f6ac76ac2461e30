// Package download implements the blob-download save path: serialized
// project bytes dropped into a downloads directory, the terminal
// equivalent of a browser "download this file" side effect.
package download

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"blockpad-cli/project"
)

// DirDownloader writes downloads into a fixed directory. Delivery is
// fire-and-forget: failures are logged and never reported back to the
// save flow, matching the browser download contract.
type DirDownloader struct {
	dir string
	log logrus.FieldLogger
}

// NewDirDownloader creates a downloader targeting dir.
func NewDirDownloader(dir string, log logrus.FieldLogger) *DirDownloader {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &DirDownloader{dir: dir, log: log}
}

// Download writes the content under the given filename. Collisions are
// resolved by numbering, the way browsers do ("Game (1).sb3").
func (d *DirDownloader) Download(filename string, content *project.Content) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		d.log.WithError(err).Error("failed to create downloads directory")
		return
	}

	path := d.resolveCollision(filepath.Join(d.dir, filename))
	if err := os.WriteFile(path, content.Data, 0644); err != nil {
		d.log.WithError(err).WithField("path", path).Error("failed to write download")
		return
	}

	d.log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(content.Data),
	}).Info("project downloaded")
}

// resolveCollision finds a free variant of path by inserting " (n)"
// before the extension.
func (d *DirDownloader) resolveCollision(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
