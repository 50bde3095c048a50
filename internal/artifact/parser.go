package artifact

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const (
	unknownDeclaredCount = -1
	framedContentEnd     = "\n" + contentEnd
	replacementCharacter = "\uFFFD"
)

var (
	recordHeaderPattern = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(recordStart) + `\n` +
		fieldFilePath + fieldSeparator + `([^\n]+)\n` +
		`((?:[A-Z_]+` + fieldSeparator + `[^\n]*\n)*)` +
		regexp.QuoteMeta(contentStart) + `\n`)
	fieldLinePattern = regexp.MustCompile(`(?m)^([A-Z_]+)` + fieldSeparator + `([^\n]*)$`)
)

// Document is the parsed form of a dump.
type Document struct {
	HasHeader    bool
	ProjectPath  string
	ProjectName  string
	ConfigSource string
	GeneratedAt  string
	Records      []Record
	// DeclaredFiles is the record count announced by the summary block, or -1 without one.
	DeclaredFiles int
}

// ParseFile reads and parses the dump at filePath.
func ParseFile(filePath string) (Document, error) {
	// #nosec G304
	data, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return Document{}, fmt.Errorf("read dump %s: %w", filePath, readErr)
	}
	return Parse(string(data)), nil
}

// Parse extracts the project information and the file records from text.
// Parsing never fails: malformed or truncated records are dropped and a missing
// header yields DefaultProjectName.
func Parse(text string) Document {
	document := Document{ProjectName: DefaultProjectName, DeclaredFiles: unknownDeclaredCount}

	firstRecord := len(text)
	if location := recordHeaderPattern.FindStringIndex(text); location != nil {
		firstRecord = location[0]
	}
	if headerFields, found := parseHeaderBlock(text[:firstRecord]); found {
		document.HasHeader = true
		document.ProjectPath = headerFields[fieldProjectPath]
		document.ConfigSource = headerFields[fieldConfigSource]
		document.GeneratedAt = headerFields[fieldGeneratedAt]
		document.ProjectName = projectNameFromPath(document.ProjectPath)
	}

	recordIndexByPath := map[string]int{}
	offset := 0
	for offset < len(text) {
		location := recordHeaderPattern.FindStringSubmatchIndex(text[offset:])
		if location == nil {
			break
		}
		bodyStart := offset + location[1]
		recordPath := strings.TrimRight(text[offset+location[2]:offset+location[3]], "\r")
		fields := parseFields(text[offset+location[4] : offset+location[5]])

		var content string
		if lengthText, framed := fields[fieldContentLength]; framed {
			contentLength, convertErr := strconv.Atoi(strings.TrimSpace(lengthText))
			if convertErr != nil || contentLength < 0 {
				// Unusable length: drop the record up to its next end marker.
				endIndex := strings.Index(text[bodyStart:], contentEnd)
				if endIndex < 0 {
					break
				}
				offset = bodyStart + endIndex + len(contentEnd)
				continue
			}
			bodyEnd := bodyStart + contentLength
			if bodyEnd > len(text) {
				break
			}
			if !strings.HasPrefix(text[bodyEnd:], framedContentEnd) {
				offset = bodyEnd
				continue
			}
			content = text[bodyStart:bodyEnd]
			offset = bodyEnd + len(framedContentEnd)
		} else {
			endIndex := strings.Index(text[bodyStart:], contentEnd)
			if endIndex < 0 {
				break
			}
			content = text[bodyStart : bodyStart+endIndex]
			offset = bodyStart + endIndex + len(contentEnd)
		}

		record := Record{
			Path:      recordPath,
			Content:   strings.ToValidUTF8(content, replacementCharacter),
			ReadError: fields[fieldReadError],
		}
		if existingIndex, duplicate := recordIndexByPath[record.Path]; duplicate {
			document.Records[existingIndex] = record
			continue
		}
		recordIndexByPath[record.Path] = len(document.Records)
		document.Records = append(document.Records, record)
	}

	if summaryFields, found := parseBlock(text[offset:], summaryStart, summaryEnd); found {
		included, includedErr := strconv.Atoi(summaryFields[fieldFilesIncluded])
		failed, failedErr := strconv.Atoi(summaryFields[fieldFilesFailed])
		if includedErr == nil && failedErr == nil {
			document.DeclaredFiles = included + failed
		}
	}

	return document
}

// Truncated reports whether the summary announced more records than were parsed.
func (document Document) Truncated() bool {
	return document.DeclaredFiles != unknownDeclaredCount && len(document.Records) < document.DeclaredFiles
}

func parseHeaderBlock(text string) (map[string]string, bool) {
	fields, found := parseBlock(text, projectInfoStart, projectInfoEnd)
	if !found {
		return nil, false
	}
	if _, hasPath := fields[fieldProjectPath]; !hasPath {
		return nil, false
	}
	return fields, true
}

// parseBlock returns the fields between startMarker and endMarker. A block
// without its end marker runs until the first blank line.
func parseBlock(text string, startMarker string, endMarker string) (map[string]string, bool) {
	startIndex := strings.Index(text, startMarker+"\n")
	if startIndex < 0 {
		return nil, false
	}
	block := text[startIndex+len(startMarker)+1:]
	if endIndex := strings.Index(block, endMarker); endIndex >= 0 {
		block = block[:endIndex]
	} else if blankIndex := strings.Index(block, "\n\n"); blankIndex >= 0 {
		block = block[:blankIndex+1]
	}
	return parseFields(block), true
}

func parseFields(block string) map[string]string {
	fields := map[string]string{}
	for _, match := range fieldLinePattern.FindAllStringSubmatch(block, -1) {
		if _, exists := fields[match[1]]; exists {
			continue
		}
		fields[match[1]] = strings.TrimRight(match[2], "\r")
	}
	return fields
}

func projectNameFromPath(projectPath string) string {
	normalized := strings.TrimRight(strings.ReplaceAll(strings.TrimSpace(projectPath), "\\", "/"), "/")
	if normalized == "" {
		return DefaultProjectName
	}
	name := path.Base(normalized)
	if name == "." || name == ".." || name == "/" || strings.HasSuffix(name, ":") {
		return DefaultProjectName
	}
	return name
}
