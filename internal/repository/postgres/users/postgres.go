package users

import (
	"context"
	"errors"

	usersdomain "finance-tracker-go/internal/domain/users"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateUser inserts the user unless the email is taken. The unique index on
// email decides races between concurrent registrations.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *usersdomain.User) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return usersdomain.ErrEmailTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usersdomain.ErrEmailTaken
	}
	return nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*usersdomain.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*usersdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *PostgresRepository) GetMember(ctx context.Context, ownerID, memberID string) (*usersdomain.User, error) {
	return r.first(ctx, "id = ? AND parent_id = ?", memberID, ownerID)
}

func (r *PostgresRepository) ListMembers(ctx context.Context, ownerID string) ([]usersdomain.User, error) {
	var members []usersdomain.User
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", ownerID).
		Order("email asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, ownerID, memberID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&usersdomain.User{}, "id = ? AND parent_id = ?", memberID, ownerID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) first(ctx context.Context, query string, args ...interface{}) (*usersdomain.User, error) {
	var user usersdomain.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usersdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
