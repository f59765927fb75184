package export

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"finance-tracker-go/internal/domain/cashflow"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestWriteCashFlowXLSX(t *testing.T) {
	rows := []cashflow.EntryRow{
		{
			Entry: cashflow.Entry{
				Name:          "Invoice 42",
				PaymentType:   cashflow.PaymentTransfer,
				FlowDirection: cashflow.FlowIncome,
				PaymentStatus: cashflow.StatusPayed,
				Amount:        decimal.RequireFromString("1250.50"),
				Date:          time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC),
			},
			CategoryName: "Services",
		},
		{
			Entry: cashflow.Entry{
				Name:          "Rent",
				PaymentType:   cashflow.PaymentTicket,
				FlowDirection: cashflow.FlowExpense,
				PaymentStatus: cashflow.StatusNotPayed,
				Amount:        decimal.NewFromInt(800),
				Date:          time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			},
			CategoryName: "Office",
		},
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("expected timezone, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCashFlowXLSX(&buf, rows, decimal.RequireFromString("450.50"), loc); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("expected readable workbook, got %v", err)
	}
	defer f.Close()

	cases := map[string]string{
		"A1": "Date",
		"H1": "Amount",
		"A2": "2024-03-14",
		"B2": "Invoice 42",
		"D2": "Services",
		"E3": "EXPENSE",
		"A5": "Net profit",
		"H5": "450.5",
	}
	for cell, want := range cases {
		got, err := f.GetCellValue(SheetName, cell)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", cell, want, got)
		}
	}
}
