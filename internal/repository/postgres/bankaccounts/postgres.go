package bankaccounts

import (
	"context"
	"errors"

	bankaccountsdomain "finance-tracker-go/internal/domain/bankaccounts"
	"finance-tracker-go/internal/domain/paging"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListBankAccounts(ctx context.Context, ownerID string, page paging.Request) ([]bankaccountsdomain.BankAccount, int64, error) {
	query := r.db.WithContext(ctx).Model(&bankaccountsdomain.BankAccount{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []bankaccountsdomain.BankAccount
	if err := query.Order("name asc, id asc").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) GetBankAccountByID(ctx context.Context, ownerID, accountID string) (*bankaccountsdomain.BankAccount, error) {
	var account bankaccountsdomain.BankAccount
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, accountID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bankaccountsdomain.ErrBankAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) CreateBankAccount(ctx context.Context, account *bankaccountsdomain.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) UpdateBankAccount(ctx context.Context, account *bankaccountsdomain.BankAccount) error {
	return r.db.WithContext(ctx).
		Model(&bankaccountsdomain.BankAccount{}).
		Where("id = ? AND owner_id = ?", account.ID, account.OwnerID).
		Updates(map[string]interface{}{
			"name":        account.Name,
			"description": account.Description,
			"amount":      account.Amount,
			"updated_at":  account.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteBankAccount(ctx context.Context, ownerID, accountID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&bankaccountsdomain.BankAccount{}, "owner_id = ? AND id = ?", ownerID, accountID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&bankaccountsdomain.BankAccount{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("owner_id = ?", ownerID).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
