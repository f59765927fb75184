package bankaccounts

import (
	"context"
	"errors"
	"testing"

	"finance-tracker-go/internal/domain/paging"
	"github.com/shopspring/decimal"
)

type fakeBankAccountRepo struct {
	accounts map[string]*BankAccount
	lastPage paging.Request
}

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{accounts: make(map[string]*BankAccount)}
}

func (r *fakeBankAccountRepo) ListBankAccounts(ctx context.Context, ownerID string, page paging.Request) ([]BankAccount, int64, error) {
	r.lastPage = page
	var items []BankAccount
	for _, account := range r.accounts {
		if account.OwnerID == ownerID {
			items = append(items, *account)
		}
	}
	return items, int64(len(items)), nil
}

func (r *fakeBankAccountRepo) GetBankAccountByID(ctx context.Context, ownerID, accountID string) (*BankAccount, error) {
	account, ok := r.accounts[accountID]
	if !ok || account.OwnerID != ownerID {
		return nil, ErrBankAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeBankAccountRepo) CreateBankAccount(ctx context.Context, account *BankAccount) error {
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *fakeBankAccountRepo) UpdateBankAccount(ctx context.Context, account *BankAccount) error {
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *fakeBankAccountRepo) DeleteBankAccount(ctx context.Context, ownerID, accountID string) (bool, error) {
	account, ok := r.accounts[accountID]
	if !ok || account.OwnerID != ownerID {
		return false, nil
	}
	delete(r.accounts, accountID)
	return true, nil
}

func (r *fakeBankAccountRepo) TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, account := range r.accounts {
		if account.OwnerID == ownerID {
			total = total.Add(account.Amount)
		}
	}
	return total, nil
}

func TestCreateBankAccountRejectsNegativeAmount(t *testing.T) {
	svc := NewService(newFakeBankAccountRepo(), 10, 100)

	_, err := svc.Create(context.Background(), "owner-a", Input{Name: "Checking", Amount: decimal.NewFromInt(-1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBankAccountLifecycle(t *testing.T) {
	repo := newFakeBankAccountRepo()
	svc := NewService(repo, 10, 100)
	ctx := context.Background()

	checking, err := svc.Create(ctx, "owner-a", Input{Name: "Checking", Amount: decimal.RequireFromString("1500.505")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !checking.Amount.Equal(decimal.RequireFromString("1500.51")) {
		t.Fatalf("expected rounded amount, got %s", checking.Amount)
	}
	if _, err := svc.Create(ctx, "owner-a", Input{Name: "Savings", Amount: decimal.NewFromInt(500)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	total, err := svc.TotalBalance(ctx, "owner-a")
	if err != nil || !total.Equal(decimal.RequireFromString("2000.51")) {
		t.Fatalf("expected 2000.51, got %s err=%v", total, err)
	}

	if _, err := svc.Update(ctx, "owner-b", checking.ID, Input{Name: "Stolen"}); !errors.Is(err, ErrBankAccountNotFound) {
		t.Fatalf("expected ErrBankAccountNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "owner-a", checking.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(ctx, "owner-a", checking.ID); !errors.Is(err, ErrBankAccountNotFound) {
		t.Fatalf("expected ErrBankAccountNotFound, got %v", err)
	}

	items, total64, err := svc.List(ctx, "owner-a", 1, 5)
	if err != nil || total64 != 1 || len(items) != 1 {
		t.Fatalf("expected one account, got %v total=%d err=%v", items, total64, err)
	}
	if repo.lastPage.Offset() != 5 {
		t.Fatalf("expected offset 5, got %d", repo.lastPage.Offset())
	}
}
