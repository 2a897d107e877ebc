package staff

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"
)

var outsideEmployeeColumns = []export.Column[models.OutsideEmployee]{
	{Key: "employee", Value: func(e models.OutsideEmployee) any { return e.Employee }},
	{Key: "owner", Value: func(e models.OutsideEmployee) any { return e.Owner }},
	{Key: "refered_as", Value: func(e models.OutsideEmployee) any { return e.ReferedAs }},
	{Key: "designation", Value: func(e models.OutsideEmployee) any { return e.Designation }},
	{Key: "contact_no", Value: func(e models.OutsideEmployee) any { return e.ContactNo }},
	{Key: "nationality", Value: func(e models.OutsideEmployee) any { return e.Nationality }},
	{Key: "visa_under", Value: func(e models.OutsideEmployee) any { return e.VisaUnder }},
	{Key: "visa_exp", Value: func(e models.OutsideEmployee) any { return e.VisaExp.String() }},
	{Key: "license_exp", Value: func(e models.OutsideEmployee) any { return e.LicenseExp.String() }},
}

var OutsideEmployees = resource.New(resource.Config[models.OutsideEmployee]{
	Entity:    "Outside employee",
	AuditType: "outside_employee",
	KeyParam:  "name",
	KeyColumn: "employee",
	Order:     "employee asc",
	Rules:     apiutil.Rules{Required: []string{"employee", "owner"}},
	ID:        func(e *models.OutsideEmployee) uint { return e.ID },
	Key:       func(e *models.OutsideEmployee) string { return e.Employee },
	Schema: listview.NewSchema[models.OutsideEmployee]().
		Text("name", func(e models.OutsideEmployee) string { return e.Employee }, func(e models.OutsideEmployee) string { return e.ReferedAs }).
		Enum("owner", func(e models.OutsideEmployee) string { return e.Owner }).
		Date("visa_exp", func(e models.OutsideEmployee) dates.Date { return e.VisaExp }, listview.Asc).
		Date("license_exp", func(e models.OutsideEmployee) dates.Date { return e.LicenseExp }, listview.Asc),
	Documents: models.OwnerOutsideEmployee,
	Export:    &resource.ExportSpec[models.OutsideEmployee]{File: export.OutsideEmployeesFile, Sheet: "Outside Employees", Columns: outsideEmployeeColumns},
})
