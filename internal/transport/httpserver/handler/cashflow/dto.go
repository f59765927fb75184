package cashflow

import (
	"fmt"
	"time"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
	"github.com/shopspring/decimal"
)

// Arrays are kept as decoded: a missing key stays nil (unrestricted) and an
// explicit [] stays empty (matches nothing).
type filterRequest struct {
	Name           *string             `json:"name" validate:"omitempty,max=120"`
	CategoryIDs    []string            `json:"categoryId" validate:"omitempty,dive,uuid"`
	PaymentTypes   []string            `json:"paymentType" validate:"omitempty,dive,oneof=TICKET TRANSFER"`
	FlowDirections []string            `json:"flowDirection" validate:"omitempty,dive,oneof=INCOME EXPENSE"`
	Statuses       []string            `json:"status" validate:"omitempty,dive,oneof=PAYED NOT_PAYED"`
	Amount         *amountRangeRequest `json:"amount"`
	Date           *dateRangeRequest   `json:"date"`
}

type amountRangeRequest struct {
	Min *decimal.Decimal `json:"min"`
	Max *decimal.Decimal `json:"max"`
}

type dateRangeRequest struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type queryRequest struct {
	EntityIDs []string       `json:"entityIds" validate:"omitempty,max=500,dive,uuid"`
	Filters   *filterRequest `json:"filters"`
	PageIndex int            `json:"pageIndex" validate:"gte=0"`
	PageSize  int            `json:"pageSize" validate:"gte=0"`
}

type exportRequest struct {
	EntityIDs []string       `json:"entityIds" validate:"omitempty,max=500,dive,uuid"`
	Filters   *filterRequest `json:"filters"`
}

type entryRequest struct {
	Name          string          `json:"name" validate:"required,max=120"`
	Description   string          `json:"description" validate:"max=500"`
	PaymentType   string          `json:"paymentType" validate:"required,oneof=TICKET TRANSFER"`
	FlowDirection string          `json:"flowDirection" validate:"required,oneof=INCOME EXPENSE"`
	PaymentStatus string          `json:"paymentStatus" validate:"required,oneof=PAYED NOT_PAYED"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date" validate:"required"`
	CategoryID    string          `json:"categoryId" validate:"required,uuid"`
	EntityID      string          `json:"entityId" validate:"required,uuid"`
}

type entryResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PaymentType   string          `json:"paymentType"`
	FlowDirection string          `json:"flowDirection"`
	PaymentStatus string          `json:"paymentStatus"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Month         int             `json:"month"`
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	EntityID      string          `json:"entityId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type pageResponse struct {
	Rows        []entryResponse `json:"rows"`
	Total       int64           `json:"total"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

func (f *filterRequest) toSpec(loc *time.Location) (cashflowdomain.FilterSpec, error) {
	if f == nil {
		return cashflowdomain.FilterSpec{}, nil
	}

	spec := cashflowdomain.FilterSpec{
		Name:           f.Name,
		CategoryIDs:    f.CategoryIDs,
		PaymentTypes:   convertValues[cashflowdomain.PaymentType](f.PaymentTypes),
		FlowDirections: convertValues[cashflowdomain.FlowDirection](f.FlowDirections),
		Statuses:       convertValues[cashflowdomain.PaymentStatus](f.Statuses),
	}
	if f.Amount != nil {
		spec.Amount = &cashflowdomain.AmountRange{Min: f.Amount.Min, Max: f.Amount.Max}
	}
	if f.Date != nil {
		from, err := parseDatePtr(f.Date.From, loc)
		if err != nil {
			return cashflowdomain.FilterSpec{}, fmt.Errorf("invalid date.from")
		}
		to, err := parseDatePtr(f.Date.To, loc)
		if err != nil {
			return cashflowdomain.FilterSpec{}, fmt.Errorf("invalid date.to")
		}
		spec.Date = &cashflowdomain.DateRange{From: from, To: to}
	}
	return spec, nil
}

func (req entryRequest) toInput(loc *time.Location) (cashflowdomain.EntryInput, error) {
	date, err := parseDate(req.Date, loc)
	if err != nil {
		return cashflowdomain.EntryInput{}, fmt.Errorf("invalid date")
	}
	return cashflowdomain.EntryInput{
		Name:          req.Name,
		Description:   req.Description,
		PaymentType:   cashflowdomain.PaymentType(req.PaymentType),
		FlowDirection: cashflowdomain.FlowDirection(req.FlowDirection),
		PaymentStatus: cashflowdomain.PaymentStatus(req.PaymentStatus),
		Amount:        req.Amount,
		Date:          date,
		CategoryID:    req.CategoryID,
		EntityID:      req.EntityID,
	}, nil
}

func convertValues[T ~string](values []string) []T {
	if values == nil {
		return nil
	}
	result := make([]T, 0, len(values))
	for _, value := range values {
		result = append(result, T(value))
	}
	return result
}

func toEntryResponse(entry cashflowdomain.Entry, categoryName string) entryResponse {
	return entryResponse{
		ID:            entry.ID,
		Name:          entry.Name,
		Description:   entry.Description,
		PaymentType:   string(entry.PaymentType),
		FlowDirection: string(entry.FlowDirection),
		PaymentStatus: string(entry.PaymentStatus),
		Amount:        entry.Amount,
		Date:          entry.Date,
		Month:         entry.Month,
		CategoryID:    entry.CategoryID,
		CategoryName:  categoryName,
		EntityID:      entry.EntityID,
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

func toPageResponse(page cashflowdomain.Page) pageResponse {
	rows := make([]entryResponse, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, toEntryResponse(row.Entry, row.CategoryName))
	}
	return pageResponse{
		Rows:        rows,
		Total:       page.Total,
		TotalProfit: page.TotalProfit,
	}
}
