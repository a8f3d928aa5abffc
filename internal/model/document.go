package model

import (
	"strings"
	"time"
)

// Document is the raw text of one uploaded log file, split into lines.
// A document is never mutated after creation; a new upload replaces the
// whole value.
type Document struct {
	UploadID   string    // unique id assigned at upload time
	Name       string    // file name as declared by the uploader, may be empty
	Lines      []string  // original lines in file order
	UploadedAt time.Time
}

// NewDocument splits raw text into lines. A single trailing newline does
// not produce an empty final line; empty input yields zero lines.
func NewDocument(uploadID, name, text string, uploadedAt time.Time) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	return &Document{
		UploadID:   uploadID,
		Name:       name,
		Lines:      lines,
		UploadedAt: uploadedAt,
	}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int { return len(d.Lines) }
