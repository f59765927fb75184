package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTicket   PaymentType = "TICKET"
	PaymentTransfer PaymentType = "TRANSFER"
)

func (t PaymentType) Valid() bool {
	return t == PaymentTicket || t == PaymentTransfer
}

type FlowDirection string

const (
	FlowIncome  FlowDirection = "INCOME"
	FlowExpense FlowDirection = "EXPENSE"
)

func (d FlowDirection) Valid() bool {
	return d == FlowIncome || d == FlowExpense
}

type PaymentStatus string

const (
	StatusPayed    PaymentStatus = "PAYED"
	StatusNotPayed PaymentStatus = "NOT_PAYED"
)

func (s PaymentStatus) Valid() bool {
	return s == StatusPayed || s == StatusNotPayed
}

// Entry is a single income or expense record. Month always equals the month
// of Date in the application timezone; the write path maintains it.
type Entry struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	OwnerID       string          `gorm:"type:uuid;index;not null"`
	EntityID      string          `gorm:"type:uuid;index;not null"`
	CategoryID    string          `gorm:"type:uuid;index;not null"`
	Name          string          `gorm:"not null"`
	Description   string          `gorm:"not null"`
	PaymentType   PaymentType     `gorm:"type:varchar(16);not null"`
	FlowDirection FlowDirection   `gorm:"type:varchar(16);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(16);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Date          time.Time       `gorm:"not null"`
	Month         int             `gorm:"type:smallint;not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "cash_flows"
}

// EntryRow is an entry joined with the display name of its category.
type EntryRow struct {
	Entry
	CategoryName string `gorm:"column:category_name"`
}

type EntryInput struct {
	Name          string
	Description   string
	PaymentType   PaymentType
	FlowDirection FlowDirection
	PaymentStatus PaymentStatus
	Amount        decimal.Decimal
	Date          time.Time
	CategoryID    string
	EntityID      string
}

type ListInput struct {
	EntityIDs []string
	Filter    FilterSpec
	PageIndex int
	PageSize  int
}

type Page struct {
	Rows        []EntryRow
	Total       int64
	TotalProfit decimal.Decimal
}

// PageResult is what a repository returns for one predicate: the requested
// slice of rows plus the count and net profit of the whole matching set.
type PageResult struct {
	Rows        []EntryRow
	Total       int64
	TotalProfit decimal.Decimal
}
