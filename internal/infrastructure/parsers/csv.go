package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TagSeparator splits the tags column of a CSV row.
const TagSeparator = ";"

// CSVParser parses contacts from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed contacts.
// Expected columns: name, type, phone, email, location, tags
func (p *CSVParser) Parse(r io.Reader) ([]RawContact, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"name", "type"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawContact, error) {
	contacts := []RawContact{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		contacts = append(contacts, RawContact{
			Name:     getColumn(record, colIndex, "name"),
			Type:     getColumn(record, colIndex, "type"),
			Phone:    getColumn(record, colIndex, "phone"),
			Email:    getColumn(record, colIndex, "email"),
			Location: getColumn(record, colIndex, "location"),
			Tags:     splitTags(getColumn(record, colIndex, "tags")),
			LineNum:  lineNum,
		})
	}

	return contacts, nil
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, TagSeparator)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
