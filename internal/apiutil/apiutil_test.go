package apiutil

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestMissing(t *testing.T) {
	body := map[string]any{
		"date":         "2025-01-10",
		"driver_name":  "  ",
		"truck_number": nil,
		"amount":       0.0,
		"include_vat":  false,
	}
	got := Missing(body, "date", "driver_name", "truck_number", "country", "amount", "include_vat")
	want := []string{"driver_name", "truck_number", "country"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	body := map[string]any{
		"credit_card": "100.5",
		"bank":        "",
		"qty":         "3",
		"include_vat": "true",
	}
	err := Normalize(body, Rules{
		Numbers: []string{"credit_card", "bank", "cash"},
		Ints:    []string{"qty"},
		Bools:   []string{"include_vat", "driver_fault"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if body["credit_card"] != 100.5 || body["bank"] != 0.0 || body["cash"] != 0.0 {
		t.Errorf("numbers = %v %v %v", body["credit_card"], body["bank"], body["cash"])
	}
	if body["qty"] != int64(3) {
		t.Errorf("qty = %#v", body["qty"])
	}
	if body["include_vat"] != true || body["driver_fault"] != false {
		t.Errorf("bools = %v %v", body["include_vat"], body["driver_fault"])
	}

	err = Normalize(map[string]any{"amount": "abc"}, Rules{Numbers: []string{"amount"}})
	if fe, ok := err.(*fiber.Error); !ok || fe.Code != 400 || fe.Message != "amount must be a number" {
		t.Errorf("err = %v", err)
	}
	err = Normalize(map[string]any{"qty": 2.5}, Rules{Ints: []string{"qty"}})
	if err == nil {
		t.Error("2.5 accepted as an integer")
	}
}

type fineBody struct {
	DriverName string  `json:"driver_name"`
	Amount     float64 `json:"amount"`
}

func decodeApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Post("/fines", func(c *fiber.Ctx) error {
		var f fineBody
		if _, err := Decode(c, &f, Rules{Required: []string{"driver_name", "amount"}, Numbers: []string{"amount"}}); err != nil {
			return err
		}
		return Created(c, "Fine added successfully", f)
	})
	app.Get("/trucks/:number", func(c *fiber.Ctx) error {
		key, err := NaturalKey(c, "number")
		if err != nil {
			return err
		}
		return c.SendString(key)
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/fines", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestDecode(t *testing.T) {
	app := decodeApp()

	code, out := post(t, app, `{"amount": 200}`)
	if code != 400 || out["message"] != "Missing required fields: driver_name" {
		t.Errorf("%d %v", code, out)
	}

	code, _ = post(t, app, `not json`)
	if code != 400 {
		t.Errorf("invalid json: %d", code)
	}

	code, out = post(t, app, `{"driver_name": "Ali", "amount": "250"}`)
	if code != 201 || out["message"] != "Fine added successfully" {
		t.Fatalf("%d %v", code, out)
	}
	rec, _ := out["record"].(map[string]any)
	if rec["amount"] != 250.0 || rec["driver_name"] != "Ali" {
		t.Errorf("record = %v", rec)
	}
}

func TestNaturalKeyDecodes(t *testing.T) {
	resp, err := decodeApp().Test(httptest.NewRequest("GET", "/trucks/T-001%20A", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "T-001 A" {
		t.Errorf("key = %q", b)
	}
}

func TestCodes(t *testing.T) {
	if got := FormatCode("F", 1); got != "F001" {
		t.Errorf("FormatCode = %s", got)
	}
	if got := NextCode("TIR", []string{"TIR001", "TIR007", "junk", "F010"}); got != "TIR008" {
		t.Errorf("NextCode = %s", got)
	}
	if got := NextCode("P", nil); got != "P001" {
		t.Errorf("empty NextCode = %s", got)
	}
}

func TestStatusTransition(t *testing.T) {
	if err := StatusTransition("pending", "completed"); err != nil {
		t.Error(err)
	}
	if err := StatusTransition("paid", "paid"); err != nil {
		t.Error(err)
	}
	err := StatusTransition("completed", "pending")
	if fe, ok := err.(*fiber.Error); !ok || fe.Code != fiber.StatusConflict {
		t.Errorf("err = %v", err)
	}
}

func TestNonNegative(t *testing.T) {
	if err := NonNegative(map[string]float64{"amount": 0}); err != nil {
		t.Error(err)
	}
	if err := NonNegative(map[string]float64{"amount": -1}); err == nil {
		t.Error("negative accepted")
	}
}

func TestEnum(t *testing.T) {
	cases := []struct {
		value, want string
		wantErr     bool
	}{
		{"", "cash", false},
		{"  ", "cash", false},
		{"BANK", "bank", false},
		{"cheque", "cheque", false},
		{"card", "", true},
	}
	for _, tc := range cases {
		got, err := Enum("payment_method", tc.value, "cash", "cash", "bank", "cheque")
		if tc.wantErr {
			fe, ok := err.(*fiber.Error)
			if !ok || fe.Code != fiber.StatusBadRequest {
				t.Errorf("Enum(%q) err = %v", tc.value, err)
				continue
			}
			if fe.Message != "payment_method must be one of: cash, bank, cheque" {
				t.Errorf("message = %q", fe.Message)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("Enum(%q) = %q, %v; want %q", tc.value, got, err, tc.want)
		}
	}
}
