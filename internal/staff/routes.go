// Package staff serves employees, the driver picker and outside employees.
package staff

import (
	"fleet-backend/internal/document"
	"fleet-backend/internal/export"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func init() {
	document.RegisterOwner("employees", document.Owner{
		Type:     models.OwnerEmployee,
		NewModel: func() any { return &models.Employee{} },
		Column:   "employee",
	})
	document.RegisterOwner("other-employees", document.Owner{
		Type:     models.OwnerOutsideEmployee,
		NewModel: func() any { return &models.OutsideEmployee{} },
		Column:   "employee",
	})
}

// Register mounts the staff routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	router.Get("/drivers", ListDriversHandler())
	router.Get("/drivers/export", ExportDriversHandler())

	router.Get("/employees/export/master",
		Employees.MasterExportHandler(export.EmployeeMasterFile, "Employee Master Data", employeeColumns))
	router.Get("/employees/:name/salary",
		EmployeeFigureHandler("salary", func(e *models.Employee) float64 { return e.Salary }))
	router.Get("/employees/:name/visa-outstanding",
		EmployeeFigureHandler("visa_outstanding", func(e *models.Employee) float64 { return e.VisaOutstanding }))
	router.Get("/employees/:name/advance-available",
		EmployeeFigureHandler("advance_avl", func(e *models.Employee) float64 { return e.AdvanceAvl }))
	Employees.Mount(router, "/employees", write...)

	OutsideEmployees.Mount(router, "/other-employees", write...)
}
