package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	// ISOLayout is the canonical wire format.
	ISOLayout = "2006-01-02"
	// StoredLayout is the legacy DD-MM-YYYY representation.
	StoredLayout = "02-01-2006"
)

var isoLayouts = []string{
	ISOLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse reads an ISO date (or timestamp) first and falls back to DD-MM-YYYY.
// The result is the calendar day at UTC midnight.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return parseDayMonthYear(s)
}

// D-M-YYYY with one or two digit day and month and a four digit year.
// Out of range day/month values roll over the way calendar
// arithmetic does, so 31-02-2024 becomes 2024-03-02.
func parseDayMonthYear(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if width := len(p); width == 0 || (i < 2 && width > 2) || (i == 2 && width != 4) {
			return time.Time{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ToInputFormat turns a stored date into the YYYY-MM-DD form used by date
// inputs. Nil, empty and unparseable values give "".
func ToInputFormat(stored *string) string {
	if stored == nil {
		return ""
	}
	t, ok := Parse(*stored)
	if !ok {
		return ""
	}
	return t.Format(ISOLayout)
}

// ToServerFormat normalizes an input date to UTC midnight and returns its
// ISO date, or nil when the input is nil or cannot be parsed.
func ToServerFormat(input *string) *string {
	if input == nil {
		return nil
	}
	t, ok := Parse(*input)
	if !ok {
		return nil
	}
	out := t.Format(ISOLayout)
	return &out
}

// FormatStored renders t in the legacy DD-MM-YYYY form. Zero time gives "".
func FormatStored(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(StoredLayout)
}
