package partner

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func TestCreateRequiresName(t *testing.T) {
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

	for _, path := range []string{"/clients", "/suppliers"} {
		req := httptest.NewRequest("POST", path, strings.NewReader(`{"name":"   ","tel_no":"04-555"}`))
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
		if resp.StatusCode != 400 || out.Message != "Missing required fields: name" {
			t.Errorf("%s: got %d %q", path, resp.StatusCode, out.Message)
		}
	}
}

func TestClientNameFilter(t *testing.T) {
	recs := []models.Client{{Name: "Gulf Cargo"}, {Name: "Desert Freight"}, {Name: "gulfstar"}}
	view := Clients.Config().Schema.View(recs, listview.Filters{"name": "GULF"}, listview.None())
	if len(view) != 2 || view[0].Name != "Gulf Cargo" || view[1].Name != "gulfstar" {
		t.Fatalf("view = %+v", view)
	}
}
