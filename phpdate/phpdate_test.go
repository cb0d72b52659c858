package phpdate

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2024, time.January, 5, 15, 4, 9, 123456000, time.UTC)
	tests := []struct {
		layout   string
		expected string
	}{
		{"Y-m-d", "2024-01-05"},
		{Default, "01/05/2024"},
		{"F j, Y", "January 5, 2024"},
		{"D, M jS", "Fri, Jan 5th"},
		{"l N w z", "Friday 5 5 4"},
		{"g:i a", "3:04 pm"},
		{"h:i:s A", "03:04:09 PM"},
		{"G H", "15 15"},
		{"y n t L", "24 1 31 1"},
		{"u v", "123456 123"},
		{"O P p T Z", "+0000 +00:00 Z UTC 0"},
		{"c", "2024-01-05T15:04:09+00:00"},
		{"r", "Fri, 05 Jan 2024 15:04:09 +0000"},
		{"U", "1704467049"},
		{"W o", "01 2024"},
		{`\Y\e\a\r: Y`, "Year: 2024"},
		{"Y/", "2024/"},
		{"", ""},
		{"ß", "ß"},
	}
	for _, tt := range tests {
		if got := Format(ts, tt.layout); got != tt.expected {
			t.Errorf("Format(%q) = %q, want %q", tt.layout, got, tt.expected)
		}
	}
}

func TestFormatOrdinalSuffix(t *testing.T) {
	tests := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 31: "st"}
	for day, want := range tests {
		ts := time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
		if got := Format(ts, "S"); got != want {
			t.Errorf("day %d suffix = %q, want %q", day, got, want)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, time.July, 1, 12, 0, 0, 0, loc)
	if got := Format(ts, "O P p"); got != "-0500 -05:00 -05:00" {
		t.Errorf("Format offsets = %q", got)
	}
}

func TestFormatSwatch(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC)
	if got := Format(ts, "B"); got != "000" {
		t.Errorf("Format(B) = %q, want %q", got, "000")
	}
}

func TestFormatTwelveHourMidnight(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 0, 30, 0, 0, time.UTC)
	if got := Format(ts, "g h a"); got != "12 12 am" {
		t.Errorf("Format = %q, want %q", got, "12 12 am")
	}
}
