package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/temirov/projdump/internal/types"
	"github.com/temirov/projdump/internal/utils"
)

// ErrInvalidRecordPath is returned for record paths that cannot be represented on a single header line.
var ErrInvalidRecordPath = errors.New("artifact: record path must be non-empty and single-line")

const (
	errorSectionOrderFormat = "artifact: %s written after the file contents section was closed"
	fieldLineFormat         = "%s%s%s\n"
)

// Header describes the dumped project.
type Header struct {
	ProjectPath  string
	ConfigSource string
	GeneratedAt  time.Time
}

// Writer emits a dump section by section. Methods must be called in order:
// WriteHeader, WriteTree, WriteRecord (any number of times), WriteSummary, Flush.
type Writer struct {
	output         *bufio.Writer
	contentsOpened bool
	contentsClosed bool
}

// NewWriter wraps destination in a buffered dump writer.
func NewWriter(destination io.Writer) *Writer {
	return &Writer{output: bufio.NewWriter(destination)}
}

// WriteHeader writes the project information block.
func (writer *Writer) WriteHeader(header Header) error {
	writer.line(projectInfoStart)
	writer.field(fieldProjectPath, singleLine(header.ProjectPath))
	if header.ConfigSource != "" {
		writer.field(fieldConfigSource, singleLine(header.ConfigSource))
	}
	if !header.GeneratedAt.IsZero() {
		writer.field(fieldGeneratedAt, utils.FormatTimestamp(header.GeneratedAt))
	}
	writer.line(projectInfoEnd)
	return writer.line("")
}

// WriteTree writes the cosmetic tree block. The lines are never parsed back.
func (writer *Writer) WriteTree(lines []string) error {
	writer.line(treeStart)
	for _, treeLine := range lines {
		writer.line(singleLine(treeLine))
	}
	writer.line(treeEnd)
	return writer.line("")
}

// WriteRecord writes one length-framed file record.
func (writer *Writer) WriteRecord(record Record) error {
	if writer.contentsClosed {
		return fmt.Errorf(errorSectionOrderFormat, "record")
	}
	if record.Path == "" || strings.ContainsAny(record.Path, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidRecordPath, record.Path)
	}
	if !writer.contentsOpened {
		writer.line(contentsStart)
		writer.contentsOpened = true
	}
	writer.line(recordStart)
	writer.field(fieldFilePath, record.Path)
	writer.field(fieldContentLength, fmt.Sprintf("%d", len(record.Content)))
	if record.ReadError != "" {
		writer.field(fieldReadError, singleLine(record.ReadError))
	}
	writer.line(contentStart)
	writer.output.WriteString(record.Content)
	writer.output.WriteString("\n")
	writer.line(contentEnd)
	return writer.line("")
}

// WriteSummary closes the file contents block and writes the run summary.
func (writer *Writer) WriteSummary(summary types.DumpSummary) error {
	if writer.contentsClosed {
		return fmt.Errorf(errorSectionOrderFormat, "summary")
	}
	if !writer.contentsOpened {
		writer.line(contentsStart)
		writer.contentsOpened = true
	}
	writer.line(contentsEnd)
	writer.contentsClosed = true
	writer.line("")
	writer.line(summaryStart)
	writer.field(fieldFilesIncluded, fmt.Sprintf("%d", summary.IncludedFiles))
	writer.field(fieldFilesFailed, fmt.Sprintf("%d", summary.FailedFiles))
	writer.field(fieldTotalSize, utils.FormatFileSize(summary.TotalBytes))
	return writer.line(summaryEnd)
}

// Flush writes any buffered data to the destination.
func (writer *Writer) Flush() error {
	return writer.output.Flush()
}

func (writer *Writer) line(text string) error {
	writer.output.WriteString(text)
	return writer.output.WriteByte('\n')
}

func (writer *Writer) field(name string, value string) {
	fmt.Fprintf(writer.output, fieldLineFormat, name, fieldSeparator, value)
}

func singleLine(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
}
