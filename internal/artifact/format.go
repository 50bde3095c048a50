// Package artifact defines the dump file format shared by projdump and projundump.
//
// A dump is a header block, a cosmetic tree block, a file contents block and a
// summary block. Every file record declares the byte length of its content, so
// content may contain any of the markers below without corrupting the parse.
package artifact

const (
	projectInfoStart = "<<PROJECT_INFO>>"
	projectInfoEnd   = "<<END_PROJECT_INFO>>"
	treeStart        = "<<PROJECT_TREE>>"
	treeEnd          = "<<END_PROJECT_TREE>>"
	contentsStart    = "<<FILE_CONTENTS>>"
	contentsEnd      = "<<END_FILE_CONTENTS>>"
	summaryStart     = "<<SUMMARY>>"
	summaryEnd       = "<<END_SUMMARY>>"

	recordStart  = "<<FILE>>"
	contentStart = "<<CONTENT_START>>"
	contentEnd   = "<<CONTENT_END>>"

	fieldProjectPath   = "PROJECT_PATH"
	fieldConfigSource  = "CONFIG_SOURCE"
	fieldGeneratedAt   = "GENERATED_AT"
	fieldFilePath      = "FILE_PATH"
	fieldContentLength = "CONTENT_LENGTH"
	fieldReadError     = "READ_ERROR"
	fieldFilesIncluded = "FILES_INCLUDED"
	fieldFilesFailed   = "FILES_FAILED"
	fieldTotalSize     = "TOTAL_SIZE"

	fieldSeparator = ": "

	// DefaultProjectName is used when a dump carries no usable PROJECT_PATH.
	DefaultProjectName = "undumped_project"

	// ReadErrorContentFormat is the placeholder content of a record whose file could not be read.
	ReadErrorContentFormat = "[Error reading file: %s]"
)

// Record is one file inside a dump.
type Record struct {
	// Path is relative to the project root and slash-separated.
	Path    string
	Content string
	// ReadError is set when the dumper could not read the file; Content then holds a placeholder.
	ReadError string
}

// Failed reports whether the record is a read error placeholder.
func (record Record) Failed() bool {
	return record.ReadError != ""
}
