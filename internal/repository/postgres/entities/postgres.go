package entities

import (
	"context"
	"errors"

	entitiesdomain "finance-tracker-go/internal/domain/entities"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(entitiesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListEntities(ctx context.Context, ownerID string) ([]entitiesdomain.Entity, error) {
	var items []entitiesdomain.Entity
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListGrantedEntities(ctx context.Context, ownerID, userID string) ([]entitiesdomain.Entity, error) {
	var items []entitiesdomain.Entity
	if err := r.db.WithContext(ctx).
		Model(&entitiesdomain.Entity{}).
		Joins("JOIN entity_users eu ON eu.entity_id = entities.id").
		Where("entities.owner_id = ? AND eu.user_id = ?", ownerID, userID).
		Order("entities.name asc, entities.id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetEntityByID(ctx context.Context, ownerID, entityID string) (*entitiesdomain.Entity, error) {
	var entity entitiesdomain.Entity
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, entityID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitiesdomain.ErrEntityNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *PostgresRepository) CreateEntity(ctx context.Context, entity *entitiesdomain.Entity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *PostgresRepository) UpdateEntity(ctx context.Context, entity *entitiesdomain.Entity) error {
	return r.db.WithContext(ctx).
		Model(&entitiesdomain.Entity{}).
		Where("id = ? AND owner_id = ?", entity.ID, entity.OwnerID).
		Updates(map[string]interface{}{
			"name":        entity.Name,
			"description": entity.Description,
			"updated_at":  entity.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteEntity(ctx context.Context, ownerID, entityID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entitiesdomain.Entity{}, "owner_id = ? AND id = ?", ownerID, entityID)
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return false, entitiesdomain.ErrEntityInUse
	}
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountEntriesByEntityID(ctx context.Context, ownerID, entityID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("cash_flows").
		Where("owner_id = ? AND entity_id = ?", ownerID, entityID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) FilterOwnedIDs(ctx context.Context, ownerID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var result []string
	if err := r.db.WithContext(ctx).
		Model(&entitiesdomain.Entity{}).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Pluck("id", &result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) FilterGrantedIDs(ctx context.Context, ownerID, userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var result []string
	if err := r.db.WithContext(ctx).
		Model(&entitiesdomain.Entity{}).
		Joins("JOIN entity_users eu ON eu.entity_id = entities.id").
		Where("entities.owner_id = ? AND eu.user_id = ? AND entities.id IN ?", ownerID, userID, ids).
		Pluck("entities.id", &result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ReplaceGrants(ctx context.Context, userID string, entityIDs []string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entitiesdomain.Grant{}).Error; err != nil {
		return err
	}

	if len(entityIDs) == 0 {
		return nil
	}

	grants := make([]entitiesdomain.Grant, 0, len(entityIDs))
	for _, entityID := range entityIDs {
		grants = append(grants, entitiesdomain.Grant{UserID: userID, EntityID: entityID})
	}
	return r.db.WithContext(ctx).Create(&grants).Error
}
