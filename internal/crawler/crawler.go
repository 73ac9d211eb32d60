// Package crawler discovers the source files a generation run should process.
package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Crawler walks a project tree and selects files by extension, skipping
// ignored directories.
type Crawler struct {
	ignored    map[string]struct{}
	extensions map[string]struct{}
}

// New creates a crawler for the given ignored directory names and file
// extensions (without the period). The .git directory is always skipped.
func New(ignoredDirs, extensions []string) *Crawler {
	c := &Crawler{
		ignored:    map[string]struct{}{".git": {}},
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, d := range ignoredDirs {
		c.ignored[filepath.Clean(d)] = struct{}{}
	}
	for _, e := range extensions {
		c.extensions[strings.ToLower(e)] = struct{}{}
	}
	return c
}

// Walk streams every matching file under root through onFile, in walk order.
func (c *Crawler) Walk(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root {
				if _, skip := c.ignored[d.Name()]; skip {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if d.Name() == ".gitignore" {
			return nil
		}

		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Name())), ".")
		if _, ok := c.extensions[ext]; !ok {
			return nil
		}

		onFile(path)
		return nil
	})
}

// Files collects the matching files under root into a slice.
func (c *Crawler) Files(root string) ([]string, error) {
	var files []string
	err := c.Walk(root, func(path string) {
		files = append(files, path)
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
