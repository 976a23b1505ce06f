// Package parsers provides parsers for importing contacts from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawContact represents a contact parsed from an external source before validation.
type RawContact struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email,omitempty"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	LineNum  int      `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing contacts from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawContact, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
