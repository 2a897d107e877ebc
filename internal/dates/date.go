package dates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day. The zero value is null on the wire and in the
// database. JSON input accepts ISO or DD-MM-YYYY; output is always ISO.
type Date struct {
	time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock part of t.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	t = t.UTC()
	return New(t.Year(), t.Month(), t.Day())
}

// Today in UTC.
func Today() Date {
	return FromTime(time.Now())
}

func (d Date) Valid() bool {
	return !d.Time.IsZero()
}

func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	return d.Format(ISOLayout)
}

// Ptr returns the ISO string or nil for the zero date.
func (d Date) Ptr() *string {
	if !d.Valid() {
		return nil
	}
	s := d.String()
	return &s
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, ok := Parse(s)
	if !ok {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD or DD-MM-YYYY", s)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		*d = FromTime(v)
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into dates.Date", value)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, ok := Parse(s)
	if !ok {
		return fmt.Errorf("invalid stored date %q", s)
	}
	d.Time = t
	return nil
}

func (Date) GormDataType() string {
	return "date"
}

// Before compares two dates; zero dates sort after every valid date.
func (d Date) Before(other Date) bool {
	switch {
	case !d.Valid():
		return false
	case !other.Valid():
		return true
	}
	return d.Time.Before(other.Time)
}
