package finance

// SalaryInput is the editable part of a salary record.
type SalaryInput struct {
	BaseSalary    float64
	OvertimeHours float64
	OvertimeRate  float64
	Bonus         float64
	Deductions    float64
}

type SalaryFigures struct {
	OvertimeAmount float64
	NetSalary      float64
}

func Salary(in SalaryInput) SalaryFigures {
	overtime := OvertimeAmount(in.OvertimeHours, in.OvertimeRate)
	return SalaryFigures{
		OvertimeAmount: overtime,
		NetSalary:      NetSalary(in.BaseSalary, overtime, in.Bonus, in.Deductions),
	}
}

type MaintenanceInput struct {
	CreditCard float64
	Bank       float64
	Cash       float64
	IncludeVAT bool
}

type MaintenanceFigures struct {
	Subtotal float64
	VAT      float64
	Total    float64
}

func Maintenance(in MaintenanceInput) MaintenanceFigures {
	subtotal := MaintenanceSubtotal(in.CreditCard, in.Bank, in.Cash)
	vat := MaintenanceVAT(subtotal, in.IncludeVAT)
	return MaintenanceFigures{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    MaintenanceTotal(subtotal, vat),
	}
}

type TripInput struct {
	TripRate        float64
	CompanyRate     float64
	DieselCost      float64
	GPToll          float64
	AdvanceExpenses float64
	OtherExp        float64
}

type TripFigures struct {
	TotalExps      float64
	TruckRevenue   float64
	CompanyRevenue float64
}

func Trip(in TripInput) TripFigures {
	total := TripExpenseTotal(in.DieselCost, in.GPToll, in.AdvanceExpenses, in.OtherExp)
	return TripFigures{
		TotalExps:      total,
		TruckRevenue:   TripRevenue(in.TripRate, total),
		CompanyRevenue: TripRevenue(in.CompanyRate, total),
	}
}
