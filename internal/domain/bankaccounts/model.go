package bankaccounts

import (
	"time"

	"github.com/shopspring/decimal"
)

type BankAccount struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	OwnerID     string          `gorm:"type:uuid;index;not null"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

type Input struct {
	Name        string
	Description string
	Amount      decimal.Decimal
}
