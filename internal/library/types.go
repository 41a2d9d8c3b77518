package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ID identifies a book. Backends hand out numbers or strings; both are kept
// as the opaque text that goes back into /books/{id}.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as it appears in request paths.
func (id ID) String() string { return string(id) }

// Status is a book's reading status. Recognized values are the four
// constants below; anything else the backend returns is kept verbatim.
type Status string

const (
	StatusToRead    Status = "To Read"
	StatusReading   Status = "Reading"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
)

var statusOrder = []Status{StatusToRead, StatusReading, StatusCompleted, StatusOnHold}

// Statuses returns the recognized statuses in display order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// ParseStatus normalizes spelling variants ("ToRead", "to_read", "on-hold")
// to a recognized status. Unrecognized input comes back trimmed with ok=false.
func ParseStatus(raw string) (Status, bool) {
	key := statusKey(raw)
	for _, s := range statusOrder {
		if statusKey(string(s)) == key {
			return s, true
		}
	}
	return Status(strings.TrimSpace(raw)), false
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Index returns the position of s in Statuses, or -1.
func (s Status) Index() int {
	for i, known := range statusOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// UnmarshalJSON normalizes recognized spellings and keeps anything else raw.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	parsed, _ := ParseStatus(raw)
	*s = parsed
	return nil
}

func statusKey(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Book mirrors the backend's book resource.
type Book struct {
	ID        ID     `json:"id,omitempty"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Category  string `json:"category"`
	Status    Status `json:"status"`
	AddedDate string `json:"added_date"`
}

// ParsedAddedDate returns AddedDate as time.Time, or the zero time when it
// is missing or unparseable.
func (b Book) ParsedAddedDate() time.Time {
	return parseTime(b.AddedDate)
}

// Draft is the payload for creating a book; the backend assigns the id.
type Draft struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Category  string `json:"category"`
	Status    Status `json:"status"`
	AddedDate string `json:"added_date"`
}

// Changes is the editable subset sent by UpdateBook.
type Changes struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Status Status `json:"status"`
}

// FormatTimestamp renders t the way added_date is stamped on creation.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// isoLocalLayouts covers timestamps written without a zone, such as
// Python's datetime.isoformat().
var isoLocalLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range isoLocalLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
