package fleet

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"
)

var OutsideOwners = resource.New(resource.Config[models.OutsideOwner]{
	Entity:    "Owner",
	AuditType: "outside_owner",
	KeyParam:  "name",
	KeyColumn: "name",
	Order:     "name asc",
	Rules:     apiutil.Rules{Required: []string{"name"}},
	ID:        func(o *models.OutsideOwner) uint { return o.ID },
	Key:       func(o *models.OutsideOwner) string { return o.Name },
	Schema: listview.NewSchema[models.OutsideOwner]().
		Text("name", func(o models.OutsideOwner) string { return o.Name }, func(o models.OutsideOwner) string { return o.ContactPerson }),
})

var Companies = resource.New(resource.Config[models.Company]{
	Entity:    "Company",
	AuditType: "company",
	KeyParam:  "name",
	KeyColumn: "name",
	Order:     "name asc",
	Rules:     apiutil.Rules{Required: []string{"name"}},
	ID:        func(c *models.Company) uint { return c.ID },
	Key:       func(c *models.Company) string { return c.Name },
})
