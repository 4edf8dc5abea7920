// Package crawler scans a directory tree for Swift source files and streams
// them to a callback, so batch scaffolding never buffers a whole project in
// memory.
package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Crawler walks directory trees looking for analyzable Swift sources.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a crawler with the default ignore list.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{".git", ".build", "Pods", "Carthage", "DerivedData"},
	}
}

// ScanProject walks the root directory and invokes onSource for every Swift
// file, streaming (path, source) pairs. Files that cannot be read are
// logged and skipped, so one bad file never fails the whole scan. Existing
// test files are skipped: they are output, not input.
func (c *Crawler) ScanProject(root string, onSource func(path, source string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".swift") || strings.HasSuffix(d.Name(), "Tests.swift") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("skipping unreadable file")
			return nil
		}
		onSource(path, string(data))
		return nil
	})
}
