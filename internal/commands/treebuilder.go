package commands

// TreeBuilder builds the cosmetic project tree using configured options.
type TreeBuilder struct {
	// IgnoredDirectories are directory names pruned wherever they occur.
	IgnoredDirectories []string
	// ExcludedPaths are absolute paths left out of the tree, such as the dump being written.
	ExcludedPaths []string
	// Warn receives messages about subdirectories that could not be read.
	Warn func(message string)
}
