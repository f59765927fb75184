package users

import (
	"time"

	"finance-tracker-go/internal/domain/scope"
)

// User is an account. ParentID is set for members and points at the owner
// account they act for.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	ParentID     *string   `gorm:"type:uuid;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (u User) Principal() (scope.Principal, error) {
	parentID := ""
	if u.ParentID != nil {
		parentID = *u.ParentID
	}
	return scope.Resolve(u.ID, parentID)
}

type MemberWithGrants struct {
	User
	EntityIDs []string
}
