package categories

import (
	"context"
	"errors"

	categoriesdomain "finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/domain/paging"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categoriesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListCategories(ctx context.Context, ownerID string, page paging.Request) ([]categoriesdomain.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&categoriesdomain.Category{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []categoriesdomain.Category
	if err := query.Order("name asc, id asc").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) GetCategoriesByIDs(ctx context.Context, ownerID string, categoryIDs []string) ([]categoriesdomain.Category, error) {
	if len(categoryIDs) == 0 {
		return []categoriesdomain.Category{}, nil
	}

	var items []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, categoryIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("id = ? AND owner_id = ?", category.ID, category.OwnerID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, "owner_id = ? AND id = ?", ownerID, categoryID)
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return false, categoriesdomain.ErrCategoryInUse
	}
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountEntriesByCategoryID(ctx context.Context, ownerID, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("cash_flows").
		Where("owner_id = ? AND category_id = ?", ownerID, categoryID).
		Count(&count).Error
	return count, err
}
