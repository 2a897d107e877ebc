package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestToInputFormat(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"nil", nil, ""},
		{"empty", strPtr(""), ""},
		{"iso", strPtr("2024-03-20"), "2024-03-20"},
		{"rfc3339", strPtr("2024-03-20T10:30:00Z"), "2024-03-20"},
		{"stored", strPtr("20-03-2024"), "2024-03-20"},
		{"stored single digits", strPtr("5-1-2025"), "2025-01-05"},
		{"day overflow rolls over", strPtr("31-02-2024"), "2024-03-02"},
		{"garbage", strPtr("not a date"), ""},
		{"two parts", strPtr("20-03"), ""},
		{"letters in parts", strPtr("aa-bb-cccc"), ""},
		{"iso day out of range", strPtr("2024-02-30"), ""},
		{"iso month out of range", strPtr("2024-13-01"), ""},
		{"two digit year", strPtr("20-03-24"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInputFormat(tt.in); got != tt.want {
				t.Errorf("ToInputFormat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToServerFormat(t *testing.T) {
	if got := ToServerFormat(nil); got != nil {
		t.Fatalf("nil input gave %q", *got)
	}
	if got := ToServerFormat(strPtr("junk")); got != nil {
		t.Fatalf("junk input gave %q", *got)
	}

	got := ToServerFormat(strPtr("2024-03-20T23:15:00+00:00"))
	if got == nil || *got != "2024-03-20" {
		t.Fatalf("got %v, want 2024-03-20", got)
	}
}

func TestRoundTripStoredDates(t *testing.T) {
	inputs := []string{"01-01-2024", "29-02-2024", "31-12-1999", "15-07-2030"}
	for _, d := range inputs {
		d := d
		server := ToServerFormat(&d)
		if server == nil {
			t.Fatalf("ToServerFormat(%q) returned nil", d)
		}
		if a, b := ToInputFormat(server), ToInputFormat(&d); a != b {
			t.Errorf("round trip of %q: %q != %q", d, a, b)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Exp  Date `json:"exp"`
		None Date `json:"none"`
	}
	if err := json.Unmarshal([]byte(`{"exp":"20-03-2024","none":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Exp.String() != "2024-03-20" {
		t.Errorf("exp = %s", payload.Exp)
	}
	if payload.None.Valid() {
		t.Errorf("none should be zero")
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"exp":"2024-03-20","none":null}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"exp":"2024/03/20"}`), &payload); err == nil {
		t.Errorf("expected error for slash date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-05-06" {
		t.Errorf("scan time = %s", d)
	}
	if err := d.Scan("07-06-2024"); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2024-06-07" {
		t.Errorf("scan string = %s", d)
	}
	if err := d.Scan(nil); err != nil || d.Valid() {
		t.Errorf("scan nil should reset, got %v %v", d, err)
	}

	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v", v, err)
	}
}

func TestDateBeforeNullsLast(t *testing.T) {
	a := New(2024, 1, 1)
	if !a.Before(Date{}) {
		t.Error("valid date should sort before zero date")
	}
	if (Date{}).Before(a) {
		t.Error("zero date should not sort before a valid one")
	}
}

func TestDateJSONRejectsOutOfRangeISO(t *testing.T) {
	for _, in := range []string{"2024-02-30", "2024-13-01", "2024-04-31"} {
		var d Date
		if err := json.Unmarshal([]byte(`"`+in+`"`), &d); err == nil {
			t.Errorf("Unmarshal(%q) = %s, want error", in, d)
		}
	}
}
