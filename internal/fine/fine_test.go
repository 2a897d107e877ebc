package fine

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func TestPrepareComputesTotal(t *testing.T) {
	f := models.Fine{Amount: 200, PenaltyAmount: 50}
	if err := prepare(nil, &f, nil); err != nil {
		t.Fatal(err)
	}
	if f.Total != 250 {
		t.Fatalf("total = %v, want 250", f.Total)
	}
	if f.Status != models.RecordPending {
		t.Fatalf("status = %q, want default pending", f.Status)
	}

	f = models.Fine{Amount: 80, Status: "PAID"}
	if err := prepare(nil, &f, nil); err != nil {
		t.Fatal(err)
	}
	if f.Status != models.RecordPaid || f.Total != 80 {
		t.Fatalf("got %+v", f)
	}
}

func TestCreateValidation(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	Register(app)

	full := `"date":"2024-03-20","driver_name":"John Doe","truck_number":"T-001","country":"oman","fine_type":"Traffic"`
	cases := []struct{ body, want string }{
		{`{"date":"2024-03-20","amount":200}`, "Missing required fields: driver_name, truck_number, country, fine_type"},
		{`{` + full + `,"amount":200,"penalty_amount":-1}`, "penalty_amount must not be negative"},
		{`{` + full + `,"amount":200,"status":"waived"}`, "status must be one of: pending, paid, overdue"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/fines", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		var out struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if resp.StatusCode != 400 || out.Message != tc.want {
			t.Errorf("got %d %q, want %q", resp.StatusCode, out.Message, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	s := summarize([]models.Fine{
		{Total: 250, Status: models.RecordPending, DriverFault: true},
		{Total: 100, Status: models.RecordPaid},
		{Total: 40, Status: models.RecordOverdue},
	}).(Summary)

	want := Summary{Count: 3, TotalAmount: 390, Pending: 2, UnpaidAmount: 290, DriverFaults: 1, CompanyFaults: 2}
	if s != want {
		t.Fatalf("summary = %+v, want %+v", s, want)
	}
}

func TestFineJSONUsesCode(t *testing.T) {
	b, err := json.Marshal(models.Fine{ID: 7, Code: "F007"})
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	json.Unmarshal(b, &out)
	if out["id"] != "F007" {
		t.Fatalf("id = %v", out["id"])
	}
}
