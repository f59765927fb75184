// Package export renders cash flow listings as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"finance-tracker-go/internal/domain/cashflow"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Cash flow"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []interface{}{"Date", "Name", "Description", "Category", "Direction", "Payment type", "Status", "Amount"}

// WriteCashFlowXLSX writes one row per entry followed by a net profit row.
// Dates are rendered in loc.
func WriteCashFlowXLSX(w io.Writer, rows []cashflow.EntryRow, totalProfit decimal.Decimal, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Date.In(loc).Format("2006-01-02"),
			row.Name,
			row.Description,
			row.CategoryName,
			string(row.FlowDirection),
			string(row.PaymentType),
			string(row.PaymentStatus),
			row.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(rows)+3)
	if err != nil {
		return err
	}
	total := []interface{}{"Net profit", "", "", "", "", "", "", totalProfit.InexactFloat64()}
	if err := f.SetSheetRow(SheetName, totalCell, &total); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 12)
	_ = f.SetColWidth(SheetName, "B", "D", 24)
	_ = f.SetColWidth(SheetName, "E", "H", 14)

	return f.Write(w)
}
