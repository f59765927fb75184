package cashflow

import (
	"context"
	"database/sql"
	"strings"

	cashflowdomain "finance-tracker-go/internal/domain/cashflow"
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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(cashflowdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// ListPage reads the page, the count and the profit inside one read-only
// repeatable read transaction so all three see the same snapshot.
func (r *PostgresRepository) ListPage(ctx context.Context, predicate cashflowdomain.Predicate, page paging.Request) (cashflowdomain.PageResult, error) {
	result := cashflowdomain.PageResult{Rows: []cashflowdomain.EntryRow{}, TotalProfit: decimal.Zero}
	if predicate.Empty() {
		return result, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := applyPredicate(tx.Table("cash_flows AS cf"), predicate)

		var summary struct {
			Total  int64           `gorm:"column:total"`
			Profit decimal.Decimal `gorm:"column:profit"`
		}
		if err := query.Session(&gorm.Session{}).
			Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN cf.flow_direction = ? THEN cf.amount ELSE -cf.amount END), 0) AS profit", string(cashflowdomain.FlowIncome)).
			Scan(&summary).Error; err != nil {
			return err
		}
		result.Total = summary.Total
		result.TotalProfit = summary.Profit
		if summary.Total == 0 {
			return nil
		}

		var rows []cashflowdomain.EntryRow
		if err := query.Session(&gorm.Session{}).
			Select("cf.*, c.name AS category_name").
			Joins("LEFT JOIN categories c ON c.id = cf.category_id").
			Order("cf.date DESC, cf.id DESC").
			Limit(page.Limit()).
			Offset(page.Offset()).
			Scan(&rows).Error; err != nil {
			return err
		}
		if rows != nil {
			result.Rows = rows
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return cashflowdomain.PageResult{}, err
	}

	return result, nil
}

func (r *PostgresRepository) GetEntry(ctx context.Context, ownerID, entryID string) (*cashflowdomain.EntryRow, error) {
	var rows []cashflowdomain.EntryRow
	if err := r.db.WithContext(ctx).
		Table("cash_flows AS cf").
		Select("cf.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = cf.category_id").
		Where("cf.owner_id = ? AND cf.id = ?", ownerID, entryID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, cashflowdomain.ErrEntryNotFound
	}
	return &rows[0], nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *cashflowdomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *cashflowdomain.Entry) error {
	result := r.db.WithContext(ctx).
		Model(&cashflowdomain.Entry{}).
		Where("id = ? AND owner_id = ?", entry.ID, entry.OwnerID).
		Updates(map[string]interface{}{
			"name":           entry.Name,
			"description":    entry.Description,
			"payment_type":   entry.PaymentType,
			"flow_direction": entry.FlowDirection,
			"payment_status": entry.PaymentStatus,
			"amount":         entry.Amount,
			"date":           entry.Date,
			"month":          entry.Month,
			"category_id":    entry.CategoryID,
			"entity_id":      entry.EntityID,
			"updated_at":     entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cashflowdomain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, ownerID, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&cashflowdomain.Entry{}, "owner_id = ? AND id = ?", ownerID, entryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CategoryExists(ctx context.Context, ownerID, categoryID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("categories").
		Where("owner_id = ? AND id = ?", ownerID, categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyPredicate(query *gorm.DB, predicate cashflowdomain.Predicate) *gorm.DB {
	query = query.Where("cf.owner_id = ?", predicate.OwnerID).
		Where("cf.entity_id IN ?", predicate.EntityIDs).
		Where("cf.amount >= ? AND cf.amount <= ?", predicate.MinAmount, predicate.MaxAmount).
		Where("cf.date >= ? AND cf.date <= ?", predicate.From, predicate.To)

	if predicate.NameContains != "" {
		query = query.Where("cf.name ILIKE ?", "%"+escapeLike(predicate.NameContains)+"%")
	}
	if predicate.CategoryIDs.Restricted() {
		query = query.Where("cf.category_id IN ?", predicate.CategoryIDs.Values())
	}
	if predicate.PaymentTypes.Restricted() {
		query = query.Where("cf.payment_type IN ?", toStrings(predicate.PaymentTypes.Values()))
	}
	if predicate.FlowDirections.Restricted() {
		query = query.Where("cf.flow_direction IN ?", toStrings(predicate.FlowDirections.Values()))
	}
	if predicate.Statuses.Restricted() {
		query = query.Where("cf.payment_status IN ?", toStrings(predicate.Statuses.Values()))
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func toStrings[T ~string](values []T) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, string(value))
	}
	return result
}
