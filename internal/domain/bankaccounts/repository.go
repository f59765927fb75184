package bankaccounts

import (
	"context"

	"finance-tracker-go/internal/domain/paging"
	"github.com/shopspring/decimal"
)

type Repository interface {
	ListBankAccounts(ctx context.Context, ownerID string, page paging.Request) ([]BankAccount, int64, error)
	GetBankAccountByID(ctx context.Context, ownerID, accountID string) (*BankAccount, error)
	CreateBankAccount(ctx context.Context, account *BankAccount) error
	UpdateBankAccount(ctx context.Context, account *BankAccount) error
	DeleteBankAccount(ctx context.Context, ownerID, accountID string) (bool, error)
	TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
}
