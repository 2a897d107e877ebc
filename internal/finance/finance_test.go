package finance

import "testing"

func TestOvertimeAmount(t *testing.T) {
	cases := []struct{ hours, rate, want float64 }{
		{0, 15, 0},
		{10, 15, 150},
		{5, 18, 90},
		{2.5, 12.4, 31},
		{7.5, 0, 0},
	}
	for _, c := range cases {
		if got := OvertimeAmount(c.hours, c.rate); got != c.want {
			t.Errorf("OvertimeAmount(%v, %v) = %v, want %v", c.hours, c.rate, got, c.want)
		}
	}
}

func TestNetSalaryMonotonic(t *testing.T) {
	base, overtime := 3000.0, 150.0
	prev := NetSalary(base, overtime, 0, 100)
	for bonus := 50.0; bonus <= 500; bonus += 50 {
		got := NetSalary(base, overtime, bonus, 100)
		if got < prev {
			t.Fatalf("net salary decreased when bonus rose to %v", bonus)
		}
		prev = got
	}

	prev = NetSalary(base, overtime, 200, 0)
	for ded := 25.0; ded <= 4000; ded += 25 {
		got := NetSalary(base, overtime, 200, ded)
		if got > prev {
			t.Fatalf("net salary increased when deductions rose to %v", ded)
		}
		prev = got
	}
}

func TestNetSalaryCanGoNegative(t *testing.T) {
	if got := NetSalary(100, 0, 0, 250); got != -150 {
		t.Errorf("got %v, want -150", got)
	}
}

func TestSalaryWorkedExample(t *testing.T) {
	got := Salary(SalaryInput{BaseSalary: 3000, OvertimeHours: 10, OvertimeRate: 15, Bonus: 200, Deductions: 100})
	if got.OvertimeAmount != 150 {
		t.Errorf("overtime = %v, want 150", got.OvertimeAmount)
	}
	if got.NetSalary != 3250 {
		t.Errorf("net = %v, want 3250", got.NetSalary)
	}
}

func TestMaintenance(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 99.99, 360, 12345.67} {
		if vat := MaintenanceVAT(subtotal, false); vat != 0 {
			t.Errorf("vat without flag = %v for %v", vat, subtotal)
		}
		vat := MaintenanceVAT(subtotal, true)
		if got := MaintenanceTotal(subtotal, vat); got != Sum(subtotal, vat) {
			t.Errorf("total(%v, %v) = %v", subtotal, vat, got)
		}
	}

	got := Maintenance(MaintenanceInput{CreditCard: 100, Bank: 210, Cash: 50, IncludeVAT: true})
	if got.Subtotal != 360 || got.VAT != 18 || got.Total != 378 {
		t.Errorf("got %+v, want subtotal 360 vat 18 total 378", got)
	}

	got = Maintenance(MaintenanceInput{CreditCard: 0.1, Bank: 0.2})
	if got.Total != 0.3 {
		t.Errorf("cent sums should not drift, got %v", got.Total)
	}
}

func TestTrip(t *testing.T) {
	got := Trip(TripInput{TripRate: 2000, CompanyRate: 1850, DieselCost: 300, GPToll: 50, AdvanceExpenses: 200, OtherExp: 100})
	if got.TotalExps != 650 {
		t.Errorf("total = %v", got.TotalExps)
	}
	if got.TruckRevenue != 1350 || got.CompanyRevenue != 1200 {
		t.Errorf("revenues = %v / %v", got.TruckRevenue, got.CompanyRevenue)
	}

	loss := Trip(TripInput{TripRate: 100, DieselCost: 300})
	if loss.TruckRevenue != -200 {
		t.Errorf("negative revenue should be kept, got %v", loss.TruckRevenue)
	}
}

func TestFineTotal(t *testing.T) {
	if got := FineTotal(200, 50); got != 250 {
		t.Errorf("FineTotal = %v, want 250", got)
	}
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		qty, min int
		want     PartStatus
	}{
		{0, 5, PartOutOfStock},
		{3, 5, PartLowStock},
		{5, 5, PartLowStock},
		{6, 5, PartInStock},
	}
	for _, c := range cases {
		if got := StockStatus(c.qty, c.min); got != c.want {
			t.Errorf("StockStatus(%d, %d) = %s, want %s", c.qty, c.min, got, c.want)
		}
	}
}
