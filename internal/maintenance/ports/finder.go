package ports

// SourceFinder discovers the files a per-file tool is run over
type SourceFinder interface {
	// Find returns the files under root matching any of the patterns.
	// Paths are relative to the project directory, sorted and unique.
	// An empty result is not an error.
	Find(root string, patterns []string) ([]string, error)
}
