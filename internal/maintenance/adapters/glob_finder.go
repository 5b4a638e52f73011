package adapters

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// GlobFinder discovers sources with recursive ** patterns
type GlobFinder struct {
	// Dir is the project directory that source roots are relative to
	Dir string
}

// NewGlobFinder creates a finder rooted at dir
func NewGlobFinder(dir string) *GlobFinder {
	return &GlobFinder{Dir: dir}
}

// Find globs every pattern below root. A root that does not exist yields no files.
func (f *GlobFinder) Find(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(filepath.Join(f.Dir, root))

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, domain.ErrSourceDiscovery(root, err)
		}
		for _, m := range matches {
			path := filepath.Join(root, filepath.FromSlash(m))
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
