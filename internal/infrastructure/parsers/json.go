package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses contacts from a JSON array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed contacts.
func (p *JSONParser) Parse(r io.Reader) ([]RawContact, error) {
	var contacts []RawContact

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&contacts); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if contacts == nil {
		contacts = []RawContact{}
	}

	// Array index + 1
	for i := range contacts {
		contacts[i].LineNum = i + 1
	}

	return contacts, nil
}
