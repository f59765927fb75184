package bankaccounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/paging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxNameLength = 80

type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

func NewService(repo Repository, defaultPageSize, maxPageSize int) *Service {
	return &Service{repo: repo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

func (s *Service) List(ctx context.Context, ownerID string, pageIndex, pageSize int) ([]BankAccount, int64, error) {
	page, err := paging.Normalize(pageIndex, pageSize, s.defaultPageSize, s.maxPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: page index or size out of range", ErrInvalidInput)
	}

	items, total, err := s.repo.ListBankAccounts(ctx, ownerID, page)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []BankAccount{}
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, ownerID, accountID string) (*BankAccount, error) {
	return s.repo.GetBankAccountByID(ctx, ownerID, accountID)
}

func (s *Service) Create(ctx context.Context, ownerID string, input Input) (*BankAccount, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	account := BankAccount{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Amount:      input.Amount,
	}
	if err := s.repo.CreateBankAccount(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) Update(ctx context.Context, ownerID, accountID string, input Input) (*BankAccount, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetBankAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}
	account.Name = input.Name
	account.Description = input.Description
	account.Amount = input.Amount
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBankAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, accountID string) error {
	deleted, err := s.repo.DeleteBankAccount(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBankAccountNotFound
	}
	return nil
}

// TotalBalance sums the recorded balance of every account of the owner.
func (s *Service) TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return s.repo.TotalBalance(ctx, ownerID)
}

func validateInput(input Input) (Input, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	switch {
	case input.Name == "":
		return input, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case len([]rune(input.Name)) > maxNameLength:
		return input, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLength)
	case input.Amount.IsNegative():
		return input, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	input.Amount = input.Amount.Round(2)
	return input, nil
}
