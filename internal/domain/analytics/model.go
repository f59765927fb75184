package analytics

import (
	"time"

	"finance-tracker-go/internal/domain/cashflow"
	"github.com/shopspring/decimal"
)

// YearScope selects every entry of one owner and entity set whose date
// falls inside [From, To].
type YearScope struct {
	OwnerID   string
	EntityIDs []string
	From      time.Time
	To        time.Time
}

type MonthTotal struct {
	Month         int
	FlowDirection cashflow.FlowDirection
	Total         decimal.Decimal
}

type CategoryTotal struct {
	CategoryID string
	Total      decimal.Decimal
}

type MonthlyPoint struct {
	Month   int
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type CategoryPoint struct {
	CategoryID string
	Name       string
	Value      decimal.Decimal
}

type Dashboard struct {
	Year           int
	Monthly        []MonthlyPoint
	IncomeByCat    []CategoryPoint
	ExpenseByCat   []CategoryPoint
	YearIncome     decimal.Decimal
	YearExpense    decimal.Decimal
	YearNetProfit  decimal.Decimal
	CurrentMonth   int
	MonthNetProfit decimal.Decimal
}
