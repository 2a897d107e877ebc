// Package partner serves clients and suppliers.
package partner

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

var clientColumns = []export.Column[models.Client]{
	{Key: "name", Value: func(c models.Client) any { return c.Name }},
	{Key: "address", Value: func(c models.Client) any { return c.Address }},
	{Key: "tel_no", Value: func(c models.Client) any { return c.TelNo }},
	{Key: "po_box", Value: func(c models.Client) any { return c.POBox }},
	{Key: "trn_no", Value: func(c models.Client) any { return c.TRNNo }},
	{Key: "contact_person", Value: func(c models.Client) any { return c.ContactPerson }},
	{Key: "person_number", Value: func(c models.Client) any { return c.PersonNumber }},
}

var Clients = resource.New(resource.Config[models.Client]{
	Entity:    "Client",
	AuditType: "client",
	KeyParam:  "name",
	KeyColumn: "name",
	Order:     "name asc",
	Rules:     apiutil.Rules{Required: []string{"name"}},
	ID:        func(c *models.Client) uint { return c.ID },
	Key:       func(c *models.Client) string { return c.Name },
	Schema:    listview.NewSchema[models.Client]().Text("name", func(c models.Client) string { return c.Name }),
	Export:    &resource.ExportSpec[models.Client]{File: export.ClientsFile, Sheet: "Clients", Columns: clientColumns},
})

var supplierColumns = []export.Column[models.Supplier]{
	{Key: "name", Value: func(s models.Supplier) any { return s.Name }},
	{Key: "tel_no", Value: func(s models.Supplier) any { return s.TelNo }},
	{Key: "contact_person", Value: func(s models.Supplier) any { return s.ContactPerson }},
	{Key: "phone_no", Value: func(s models.Supplier) any { return s.PhoneNo }},
	{Key: "about", Value: func(s models.Supplier) any { return s.About }},
}

var Suppliers = resource.New(resource.Config[models.Supplier]{
	Entity:    "Supplier",
	AuditType: "supplier",
	KeyParam:  "name",
	KeyColumn: "name",
	Order:     "name asc",
	Rules:     apiutil.Rules{Required: []string{"name"}},
	ID:        func(s *models.Supplier) uint { return s.ID },
	Key:       func(s *models.Supplier) string { return s.Name },
	Schema:    listview.NewSchema[models.Supplier]().Text("name", func(s models.Supplier) string { return s.Name }),
	Export:    &resource.ExportSpec[models.Supplier]{File: export.SuppliersFile, Sheet: "Suppliers", Columns: supplierColumns},
})

// Register mounts the partner routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/clients/names", Clients.NamesHandler("name"))
	Clients.Mount(router, "/clients", write...)

	router.Get("/suppliers/names", Suppliers.NamesHandler("name"))
	Suppliers.Mount(router, "/suppliers", write...)
}
