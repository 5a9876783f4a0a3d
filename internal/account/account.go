// Package account loads the account records the simulator authenticates.
package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultFile is the account file read when none is configured.
const DefaultFile = "accounts.json"

// Record is one account entry. Only the two fields the simulator uses are
// decoded; any other keys in the file are ignored.
type Record struct {
	Address    string `json:"Address"`
	DeviceHash string `json:"deviceHash"`
}

// Load reads a JSON array of records from path.
//
// Load never fails: a missing file, unreadable file, malformed JSON, a
// top-level value that is not an array, or any element lacking a string
// Address or deviceHash all yield an empty slice. The reason is logged at
// debug level.
func Load(path string) []Record {
	records, err := Read(path)
	if err != nil {
		slog.Debug("accounts unavailable, continuing with none", "path", path, "error", err)
		return nil
	}
	return records
}

// Read is Load with the failure reported.
func Read(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	return Parse(data)
}

// ErrInvalidRecord marks an array element that is not a complete account.
var ErrInvalidRecord = errors.New("invalid account record")

// rawRecord distinguishes absent or null fields from empty strings.
type rawRecord struct {
	Address    *string `json:"Address"`
	DeviceHash *string `json:"deviceHash"`
}

// Parse decodes a JSON array of records. Every element must be an object
// carrying both fields as strings; one bad element invalidates the whole
// document.
func Parse(data []byte) ([]Record, error) {
	var raw []*rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		switch {
		case r == nil:
			return nil, fmt.Errorf("parse accounts: element %d is null: %w", i, ErrInvalidRecord)
		case r.Address == nil:
			return nil, fmt.Errorf("parse accounts: element %d has no Address: %w", i, ErrInvalidRecord)
		case r.DeviceHash == nil:
			return nil, fmt.Errorf("parse accounts: element %d has no deviceHash: %w", i, ErrInvalidRecord)
		}
		records = append(records, Record{Address: *r.Address, DeviceHash: *r.DeviceHash})
	}
	return records, nil
}

// Label returns the first n characters of the address for display.
// The address is NFC normalized first so truncation never splits a base
// character from its combining marks.
func (r Record) Label(n int) string {
	s := norm.NFC.String(r.Address)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
