package fleet

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

func TestCreateValidation(t *testing.T) {
	app := testApp()

	cases := []struct {
		path, body, want string
	}{
		{"/trucks", `{"truck_number":"T-100","year":""}`, "Missing required fields: year, vehicle_under, country"},
		{"/trucks", `{"truck_number":"T-100","year":"20x4","vehicle_under":"Alpha","country":"AE"}`, "year must be a whole number"},
		{"/trailers", `{"asset_value":1000}`, "Missing required fields: trailer_no"},
		{"/other-trucks", `{"truck_number":"OT-1"}`, "Missing required fields: owner"},
		{"/other-owners", `{"name":null}`, "Missing required fields: name"},
		{"/companies", `{}`, "Missing required fields: name"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", tc.path, strings.NewReader(tc.body))
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

		if resp.StatusCode != fiber.StatusBadRequest || out.Message != tc.want {
			t.Errorf("POST %s: got %d %q, want 400 %q", tc.path, resp.StatusCode, out.Message, tc.want)
		}
	}
}

func TestTruckViewFiltersCommute(t *testing.T) {
	recs := []models.Truck{
		{TruckNumber: "T-1", Driver: "Ravi", Country: "AE", VehicleUnder: "Alpha"},
		{TruckNumber: "T-2", Driver: "Ravindra", Country: "OM", VehicleUnder: "Alpha"},
		{TruckNumber: "T-3", Driver: "Sam", Country: "AE", VehicleUnder: "Beta"},
		{TruckNumber: "T-4", Driver: "ravi", Country: "AE", VehicleUnder: "Alpha"},
	}

	f := listview.Filters{"driver": "RAVI", "country": "AE", "company": "Alpha"}
	got := truckSchema.View(recs, f, listview.None())
	if len(got) != 2 || got[0].TruckNumber != "T-1" || got[1].TruckNumber != "T-4" {
		t.Fatalf("view = %+v", got)
	}

	f["country"] = "all"
	if n := len(truckSchema.View(recs, f, listview.None())); n != 3 {
		t.Fatalf("country=all kept %d", n)
	}
}

func TestTruckSortInsuranceExpiry(t *testing.T) {
	recs := []models.Truck{
		{TruckNumber: "A", InsExp: dates.New(2026, 3, 1)},
		{TruckNumber: "B"},
		{TruckNumber: "C", InsExp: dates.New(2025, 12, 31)},
	}
	got := truckSchema.View(recs, nil, listview.ByField("ins_exp", listview.Asc))
	if got[0].TruckNumber != "C" || got[1].TruckNumber != "A" || got[2].TruckNumber != "B" {
		t.Fatalf("order = %s %s %s", got[0].TruckNumber, got[1].TruckNumber, got[2].TruckNumber)
	}
}

func TestSummarizeTrucks(t *testing.T) {
	s := summarizeTrucks([]models.Truck{
		{Country: "AE", VehicleUnder: "Alpha", TruckValue: 100000.10},
		{Country: "AE", VehicleUnder: "Beta", TruckValue: 50000.20},
		{Country: "OM"},
	}).(TruckSummary)

	if s.Total != 3 || s.TotalValue != 150000.30 {
		t.Fatalf("summary = %+v", s)
	}
	if s.ByCountry["AE"] != 2 || s.ByCompany["Beta"] != 1 {
		t.Fatalf("groups = %+v", s)
	}
}
