package resource

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/listview"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type widget struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func newApp(cfg Config[widget]) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	New(cfg).Mount(app, "/widgets")
	return app
}

func widgetConfig() Config[widget] {
	return Config[widget]{
		Entity:     "Widget",
		AuditType:  "widget",
		NumericKey: true,
		Rules:      apiutil.Rules{Required: []string{"name", "amount"}, Numbers: []string{"amount"}},
		ID:         func(w *widget) uint { return w.ID },
		Key:        func(w *widget) string { return w.Name },
	}
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	var out struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(b, &out)
	return resp.StatusCode, out.Message
}

func TestCreateRejectsMissingFields(t *testing.T) {
	app := newApp(widgetConfig())

	status, msg := send(t, app, "POST", "/widgets", `{"name":"  "}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if msg != "Missing required fields: name, amount" {
		t.Fatalf("message = %q", msg)
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	app := newApp(widgetConfig())

	status, msg := send(t, app, "POST", "/widgets", `{not json`)
	if status != fiber.StatusBadRequest || msg != "Invalid request body" {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestPrepareErrorStopsCreate(t *testing.T) {
	cfg := widgetConfig()
	var seen *widget
	cfg.Prepare = func(c *fiber.Ctx, rec, old *widget) error {
		seen = rec
		if old != nil {
			t.Error("old should be nil on create")
		}
		return apiutil.NonNegative(map[string]float64{"amount": rec.Amount})
	}
	app := newApp(cfg)

	status, msg := send(t, app, "POST", "/widgets", `{"name":"bolt","amount":"-5"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if msg != "amount must not be negative" {
		t.Fatalf("message = %q", msg)
	}
	if seen == nil || seen.Amount != -5 || seen.Name != "bolt" {
		t.Fatalf("decoded record = %+v", seen)
	}
}

func TestNumericKeyRejectsBadID(t *testing.T) {
	app := newApp(widgetConfig())

	for _, tc := range []struct{ method, path string }{
		{"GET", "/widgets/abc"},
		{"PUT", "/widgets/0"},
		{"DELETE", "/widgets/-1"},
	} {
		status, msg := send(t, app, tc.method, tc.path, `{}`)
		if status != fiber.StatusBadRequest || msg != "Invalid id" {
			t.Errorf("%s %s: got %d %q", tc.method, tc.path, status, msg)
		}
	}
}

func TestListParams(t *testing.T) {
	schema := listview.NewSchema[widget]().
		Text("search", func(w widget) string { return w.Name }).
		Number("amount", func(w widget) float64 { return w.Amount }, listview.Desc)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		f, spec, err := ListParams(c, schema)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return c.JSON(fiber.Map{"filters": f, "sort": spec.String()})
	})

	cases := []struct {
		query      string
		status     int
		sort       string
		filterKeys []string
	}{
		{"?search=bo", 200, "none", []string{"search"}},
		{"?sort=amount", 200, "amount:desc", nil},
		{"?sort=amount&dir=asc&country=AE", 200, "amount:asc", nil},
		{"?sort=colour", 200, "none", nil},
		{"?sort=amount&dir=sideways", 400, "", nil},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.query, resp.StatusCode, tc.status)
			continue
		}
		if tc.status != 200 {
			continue
		}
		var out struct {
			Filters map[string]string `json:"filters"`
			Sort    string            `json:"sort"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out.Sort != tc.sort {
			t.Errorf("%s: sort = %q, want %q", tc.query, out.Sort, tc.sort)
		}
		if len(out.Filters) != len(tc.filterKeys) {
			t.Errorf("%s: filters = %v", tc.query, out.Filters)
		}
	}
}

func TestExactCountryIgnoresCase(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=fleet"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	narrow := ExactCountry("country")
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var rows []widget
			return narrow(c, tx.Table("widgets")).Find(&rows)
		})
		return c.SendString(sql)
	})

	sqlFor := func(path string) string {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return string(b)
	}

	if got := sqlFor("/?country=Oman"); !strings.Contains(got, "LOWER(country) = LOWER('Oman')") {
		t.Errorf("sql = %s", got)
	}
	if got := sqlFor("/"); strings.Contains(got, "WHERE") {
		t.Errorf("no country still filtered: %s", got)
	}
}
