package export

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// File names per list.
const (
	EmployeesFile        = "employees.xlsx"
	EmployeeMasterFile   = "employee_master_data.xlsx"
	DriversFile          = "drivers.xlsx"
	TrucksFile           = "trucks.xlsx"
	TrailersFile         = "trailers.xlsx"
	OutsideTrucksFile    = "outside_trucks.xlsx"
	OutsideTrailersFile  = "outside_trailers.xlsx"
	OutsideEmployeesFile = "outside_employees.xlsx"
	MaintenanceFile      = "maintenance.xlsx"
	TripsFile            = "trips.xlsx"
	FinesFile            = "fines.xlsx"
	ClientsFile          = "clients.xlsx"
	SuppliersFile        = "suppliers.xlsx"
	IncomeFile           = "income.xlsx"
	ExpensesFile         = "expenses.xlsx"
	SalariesFile         = "salaries.xlsx"
	InvestorSharesFile   = "investor_shares.xlsx"
	TIRSoldFile          = "tir_sold.xlsx"
	ProfitMasterFile     = "profit_master.xlsx"
	VisasFile            = "visas.xlsx"
	InsuranceFile        = "insurance.xlsx"
	TIRFile              = "tir.xlsx"
	PartsFile            = "parts.xlsx"
)

// Column maps one record field to a spreadsheet column. Key heads the
// column in current-view exports; Label and Width are used by master data.
type Column[T any] struct {
	Key   string
	Label string
	Width float64
	Value func(T) any
}

// CurrentView writes rows as they are shown: one column per Key.
func CurrentView[T any](sheet string, rows []T, cols []Column[T]) ([]byte, error) {
	return build(sheet, rows, cols, false)
}

// MasterData writes the full collection with relabeled headers and fixed
// column widths.
func MasterData[T any](sheet string, rows []T, cols []Column[T]) ([]byte, error) {
	return build(sheet, rows, cols, true)
}

func build[T any](sheet string, rows []T, cols []Column[T], master bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	for c, col := range cols {
		header := col.Key
		if master && col.Label != "" {
			header = col.Label
		}
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}

		if master && col.Width > 0 {
			name, _ := excelize.ColumnNumberToName(c + 1)
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return nil, err
			}
		}
	}

	for r, row := range rows {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, col.Value(row)); err != nil {
				return nil, err
			}
		}
	}

	if master && len(cols) > 0 {
		style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Send answers with data as a spreadsheet attachment.
func Send(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
