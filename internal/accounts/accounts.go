// Package accounts serves the money side of the business: income,
// expenses, salaries, investor shares, TIR carnet sales and the monthly
// profit master.
package accounts

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/document"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var PaymentMethods = []string{"cash", "bank", "cheque"}

// settle canonicalizes a payment status. prev is the stored status on
// update and nil on create; a settled record cannot go back to pending.
func settle(field, value string, prev *string, allowed ...string) (string, error) {
	s, err := apiutil.Enum(field, value, models.PaymentPending, allowed...)
	if err != nil {
		return "", err
	}
	if prev != nil {
		if err := apiutil.StatusTransition(*prev, s); err != nil {
			return "", err
		}
	}
	return s, nil
}

func paymentMethod(value string) (string, error) {
	return apiutil.Enum("payment_method", value, "", PaymentMethods...)
}

func checkPeriod(year, month int) error {
	if year < 2000 || month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid year or month")
	}
	return nil
}

func init() {
	document.RegisterOwner("salaries", document.Owner{
		Type:     models.OwnerSalary,
		NewModel: func() any { return &models.Salary{} },
		Column:   "id",
	})
}

// Register mounts the account routes. write guards mutations.
func Register(router fiber.Router, write ...fiber.Handler) {
	Incomes.Mount(router, "/income", write...)
	Expenses.Mount(router, "/expenses", write...)

	router.Get("/salaries/by-employee/:name", SalariesByEmployeeHandler())
	router.Get("/salaries/by-month/:year/:month", SalariesByMonthHandler())
	Salaries.Mount(router, "/salaries", write...)

	InvestorShares.Mount(router, "/investor-shares", write...)
	TIRSales.Mount(router, "/tir-sold", write...)

	router.Get("/profit-master/period/:year/:month", PeriodBreakdownHandler())
	router.Post("/profit-master/generate", append(write, GenerateProfitMasterHandler())...)
	ProfitMasters.Mount(router, "/profit-master", write...)
}
