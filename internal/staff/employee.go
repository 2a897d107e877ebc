package staff

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"

	"github.com/gofiber/fiber/v2"
)

var employeeRules = apiutil.Rules{
	Required: []string{"employee", "refered_as", "designation", "salary"},
	Numbers:  []string{"salary", "visa_outstanding", "advance_avl"},
}

var employeeSchema = listview.NewSchema[models.Employee]().
	Text("name", func(e models.Employee) string { return e.ReferedAs }).
	Text("designation", func(e models.Employee) string { return e.Designation }).
	Enum("company", func(e models.Employee) string { return e.VisaUnder }).
	Number("visa_outstanding", func(e models.Employee) float64 { return e.VisaOutstanding }, listview.Desc).
	Number("advance_avl", func(e models.Employee) float64 { return e.AdvanceAvl }, listview.Desc).
	Date("visa_exp", func(e models.Employee) dates.Date { return e.VisaExp }, listview.Asc).
	Date("health_ins_exp", func(e models.Employee) dates.Date { return e.HealthInsExp }, listview.Asc).
	Date("license_exp", func(e models.Employee) dates.Date { return e.LicenseExp }, listview.Asc)

var employeeColumns = []export.Column[models.Employee]{
	{Key: "employee", Label: "Full Name", Width: 30, Value: func(e models.Employee) any { return e.Employee }},
	{Key: "refered_as", Label: "Referred As", Width: 15, Value: func(e models.Employee) any { return e.ReferedAs }},
	{Key: "eid", Label: "Emirates ID", Width: 15, Value: func(e models.Employee) any { return e.EID }},
	{Key: "designation", Label: "Designation", Width: 15, Value: func(e models.Employee) any { return e.Designation }},
	{Key: "contact_no", Label: "Contact Number", Width: 15, Value: func(e models.Employee) any { return e.ContactNo }},
	{Key: "whatsapp_no", Label: "WhatsApp Number", Width: 15, Value: func(e models.Employee) any { return e.WhatsappNo }},
	{Key: "salary", Label: "Salary", Width: 10, Value: func(e models.Employee) any { return e.Salary }},
	{Key: "nationality", Label: "Nationality", Width: 15, Value: func(e models.Employee) any { return e.Nationality }},
	{Key: "visa_outstanding", Label: "Outstanding", Width: 15, Value: func(e models.Employee) any { return e.VisaOutstanding }},
	{Key: "advance_avl", Label: "Advance Available", Width: 15, Value: func(e models.Employee) any { return e.AdvanceAvl }},
	{Key: "visa_under", Label: "Visa Under", Width: 10, Value: func(e models.Employee) any { return e.VisaUnder }},
	{Key: "visa_exp", Label: "Visa Expiry", Width: 15, Value: func(e models.Employee) any { return e.VisaExp.String() }},
	{Key: "health_ins_exp", Label: "Health Insurance Expiry", Width: 15, Value: func(e models.Employee) any { return e.HealthInsExp.String() }},
	{Key: "emp_ins_exp", Label: "Employment Insurance Expiry", Width: 15, Value: func(e models.Employee) any { return e.EmpInsExp.String() }},
	{Key: "license_exp", Label: "License Expiry", Width: 15, Value: func(e models.Employee) any { return e.LicenseExp.String() }},
}

type EmployeeSummary struct {
	Total                int            `json:"total"`
	Drivers              int            `json:"drivers"`
	TotalSalary          float64        `json:"total_salary"`
	TotalVisaOutstanding float64        `json:"total_visa_outstanding"`
	TotalAdvance         float64        `json:"total_advance"`
	ByCompany            map[string]int `json:"by_company"`
}

func summarizeEmployees(recs []models.Employee) any {
	s := EmployeeSummary{Total: len(recs), ByCompany: map[string]int{}}
	s.Drivers = listview.Count(recs, isDriver)
	s.TotalSalary = listview.Sum(recs, func(e models.Employee) float64 { return e.Salary })
	s.TotalVisaOutstanding = listview.Sum(recs, func(e models.Employee) float64 { return e.VisaOutstanding })
	s.TotalAdvance = listview.Sum(recs, func(e models.Employee) float64 { return e.AdvanceAvl })
	for _, e := range recs {
		if e.VisaUnder != "" {
			s.ByCompany[e.VisaUnder]++
		}
	}
	return s
}

func isDriver(e models.Employee) bool {
	return e.Designation == models.DesignationDriver
}

var Employees = resource.New(resource.Config[models.Employee]{
	Entity:    "Employee",
	AuditType: "employee",
	KeyParam:  "name",
	KeyColumn: "employee",
	Order:     "employee asc",
	Rules:     employeeRules,
	ID:        func(e *models.Employee) uint { return e.ID },
	Key:       func(e *models.Employee) string { return e.Employee },
	Schema:    employeeSchema,
	Documents: models.OwnerEmployee,
	Export:    &resource.ExportSpec[models.Employee]{File: export.EmployeesFile, Sheet: "Employees", Columns: employeeColumns},
	Summary:   summarizeEmployees,
})

// DriverResponse is one entry of the driver picker.
type DriverResponse struct {
	Employee  string `json:"employee"`
	ReferedAs string `json:"refered_as"`
}

func lookupEmployee(c *fiber.Ctx) (*models.Employee, error) {
	name, err := apiutil.NaturalKey(c, "name")
	if err != nil {
		return nil, err
	}
	return Employees.FindBy("employee", name)
}

// GET /api/drivers
func ListDriversHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := Employees.All()
		if err != nil {
			return err
		}
		drivers := listview.ComputeView(recs, []listview.Predicate[models.Employee]{isDriver}, nil)

		resp := make([]DriverResponse, 0, len(drivers))
		for _, d := range drivers {
			resp = append(resp, DriverResponse{Employee: d.Employee, ReferedAs: d.ReferedAs})
		}
		return c.JSON(resp)
	}
}

// GET /api/drivers/export
func ExportDriversHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := Employees.All()
		if err != nil {
			return err
		}
		drivers := listview.ComputeView(recs, []listview.Predicate[models.Employee]{isDriver}, nil)
		data, err := export.CurrentView("Drivers", drivers, employeeColumns)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export failed")
		}
		return export.Send(c, export.DriversFile, data)
	}
}

// GET /api/employees/:name/salary
// GET /api/employees/:name/visa-outstanding
// GET /api/employees/:name/advance-available
func EmployeeFigureHandler(field string, value func(*models.Employee) float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := lookupEmployee(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"employee": e.Employee, field: value(e)})
	}
}
