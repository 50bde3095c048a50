// Package types defines every cross‑package data structure used by the projdump and projundump CLIs.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	CommandDump = "dump"
)

// FileEntry is a path discovered by the directory walk, relative to the project root.
type FileEntry struct {
	// RelativePath uses forward slashes regardless of the host platform.
	RelativePath string
	Type         string
}

// FileRecord is one file accepted by the filter, ready to be serialized into the dump.
type FileRecord struct {
	FileEntry
	AbsolutePath string
	Content      string
	SizeBytes    int64
	// ReadError is non-empty when the file could not be read; Content then holds a placeholder.
	ReadError string
}

// Failed reports whether the record carries a read error placeholder instead of file content.
func (record FileRecord) Failed() bool {
	return record.ReadError != ""
}

// TreeNode is a node of the cosmetic project tree.
type TreeNode struct {
	Name     string
	Type     string
	Children []*TreeNode
}

// DumpSummary captures the outcome of a dump run.
type DumpSummary struct {
	IncludedFiles int
	FailedFiles   int
	TotalBytes    int64
}
