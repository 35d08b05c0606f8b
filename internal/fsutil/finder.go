// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"
)

// FindFilesMatching lists the regular files directly inside dir whose base
// name matches pattern, sorted by name. A missing directory yields no files
// and no error.
func FindFilesMatching(afs afero.Fs, dir string, pattern *regexp.Regexp) ([]string, error) {
	if pattern == nil {
		panic("pattern must not be nil")
	}

	entries, err := afero.ReadDir(afs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && pattern.MatchString(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether path names an existing regular file.
func Exists(afs afero.Fs, path string) bool {
	info, err := afs.Stat(path)
	return err == nil && !info.IsDir()
}
