package count

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultSuffix is the file name suffix of input files.
const DefaultSuffix = ".txt"

// Discover lists the input files in dir whose names end in suffix.
// Without recursive only the direct entries of dir are considered. Entries
// that are directories are skipped; anything else matching the suffix is
// returned, even if it cannot be read, so its worker can report the failure.
// The returned paths are sorted.
func Discover(dir, suffix string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
			files = append(files, path)
			return nil
		})
	} else {
		var entries []os.DirEntry
		entries, err = os.ReadDir(dir)
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
				continue
			}
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoInputFiles, suffix, dir)
	}
	slices.Sort(files)
	return files, nil
}
