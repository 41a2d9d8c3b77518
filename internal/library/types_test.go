package library

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatus_NormalizesSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"To Read", StatusToRead},
		{"ToRead", StatusToRead},
		{"to_read", StatusToRead},
		{"  TO-READ ", StatusToRead},
		{"reading", StatusReading},
		{"COMPLETED", StatusCompleted},
		{"OnHold", StatusOnHold},
		{"on hold", StatusOnHold},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q, true", tc.in, got, ok, tc.want)
		}
	}
}

func TestParseStatus_KeepsUnknownRaw(t *testing.T) {
	got, ok := ParseStatus("  Abandoned ")
	if ok {
		t.Fatalf("ParseStatus(Abandoned) ok = true, want false")
	}
	if got != "Abandoned" {
		t.Fatalf("ParseStatus(Abandoned) = %q, want trimmed raw value", got)
	}
	if got.Valid() || got.Index() != -1 {
		t.Fatalf("unknown status reported as valid")
	}
}

func TestStatuses_OrderAndCopy(t *testing.T) {
	got := Statuses()
	want := []Status{StatusToRead, StatusReading, StatusCompleted, StatusOnHold}
	if len(got) != len(want) {
		t.Fatalf("Statuses() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] || want[i].Index() != i {
			t.Fatalf("Statuses()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if Statuses()[0] != StatusToRead {
		t.Fatalf("Statuses should return a copy")
	}
}

func TestBookUnmarshal_IDsAndStatus(t *testing.T) {
	var books []Book
	raw := `[
  {"id": 7, "title": "A", "status": "completed"},
  {"id": "abc-1", "title": "B", "status": "Dropped"},
  {"id": null, "title": "C", "status": "To Read"}
]`
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if books[0].ID != "7" || books[0].Status != StatusCompleted {
		t.Fatalf("book 0 = %#v, want id=7 status=Completed", books[0])
	}
	if books[1].ID != "abc-1" || books[1].Status != "Dropped" || books[1].Status.Valid() {
		t.Fatalf("book 1 = %#v, want id=abc-1 raw status", books[1])
	}
	if books[2].ID != "" {
		t.Fatalf("book 2 id = %q, want empty", books[2].ID)
	}
}

func TestIDUnmarshal_RejectsObjects(t *testing.T) {
	var id ID
	if err := id.UnmarshalJSON([]byte(`{"x":1}`)); err == nil {
		t.Fatalf("UnmarshalJSON(object) returned nil error")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	cases := []string{
		"2025-12-13T10:11:12Z",
		"2025-12-13T10:11:12.123456+02:00",
		"2025-12-13T10:11:12.123456",
		"2025-12-13T10:11:12",
		"2025-12-13 10:11:12",
		"2025-12-13",
	}
	for _, in := range cases {
		got := parseTime(in)
		if got.IsZero() {
			t.Fatalf("parseTime(%q) returned zero time", in)
		}
		if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
			t.Fatalf("parseTime(%q) = %v, want 2025-12-13", in, got)
		}
	}
	if !parseTime("yesterday").IsZero() || !parseTime(" ").IsZero() {
		t.Fatalf("parseTime should return zero for unparseable input")
	}
}

func TestFormatTimestamp_RoundTrips(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)
	b := Book{AddedDate: FormatTimestamp(now)}
	if !b.ParsedAddedDate().Equal(now) {
		t.Fatalf("ParsedAddedDate = %v, want %v", b.ParsedAddedDate(), now)
	}
}
