package staff

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-backend/internal/dates"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
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
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out struct {
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out.Message
}

func TestCreateEmployeeRequiresFields(t *testing.T) {
	app := testApp()

	status, msg := call(t, app, "POST", "/employees", `{"employee":"Ravi Kumar","salary":0}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if msg != "Missing required fields: refered_as, designation" {
		t.Fatalf("message = %q", msg)
	}
}

func TestCreateOutsideEmployeeRequiresOwner(t *testing.T) {
	app := testApp()

	status, msg := call(t, app, "POST", "/other-employees", `{"employee":"Ali"}`)
	if status != fiber.StatusBadRequest || msg != "Missing required fields: owner" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestFigureLookupRejectsBlankName(t *testing.T) {
	app := testApp()

	status, msg := call(t, app, "GET", "/employees/%20/salary", "")
	if status != fiber.StatusBadRequest || msg != "Missing name" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestSummarizeEmployees(t *testing.T) {
	recs := []models.Employee{
		{Employee: "A", Designation: models.DesignationDriver, Salary: 2500, VisaUnder: "Alpha", VisaOutstanding: 300},
		{Employee: "B", Designation: "mechanic", Salary: 3000, VisaUnder: "Alpha", AdvanceAvl: 150},
		{Employee: "C", Designation: models.DesignationDriver, Salary: 2200, VisaUnder: "Beta"},
	}

	s := summarizeEmployees(recs).(EmployeeSummary)
	if s.Total != 3 || s.Drivers != 2 {
		t.Fatalf("counts = %+v", s)
	}
	if s.TotalSalary != 7700 || s.TotalVisaOutstanding != 300 || s.TotalAdvance != 150 {
		t.Fatalf("sums = %+v", s)
	}
	if s.ByCompany["Alpha"] != 2 || s.ByCompany["Beta"] != 1 {
		t.Fatalf("by company = %v", s.ByCompany)
	}
}

func TestEmployeeViewSortsVisaExpiryNullsLast(t *testing.T) {
	recs := []models.Employee{
		{Employee: "late", ReferedAs: "Late", VisaExp: dates.New(2026, 5, 1)},
		{Employee: "none", ReferedAs: "None"},
		{Employee: "early", ReferedAs: "Early", VisaExp: dates.New(2025, 1, 10)},
	}

	view := employeeSchema.View(recs, listview.Filters{}, listview.ByField("visa_exp", listview.Asc))
	got := []string{view[0].Employee, view[1].Employee, view[2].Employee}
	if strings.Join(got, ",") != "early,late,none" {
		t.Fatalf("order = %v", got)
	}

	view = employeeSchema.View(recs, listview.Filters{"name": "ar"}, listview.None())
	if len(view) != 1 || view[0].Employee != "early" {
		t.Fatalf("filter = %+v", view)
	}
}

