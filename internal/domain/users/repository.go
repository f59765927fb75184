package users

import "context"

type Repository interface {
	// CreateUser returns ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetMember(ctx context.Context, ownerID, memberID string) (*User, error)
	ListMembers(ctx context.Context, ownerID string) ([]User, error)
	DeleteMember(ctx context.Context, ownerID, memberID string) (bool, error)
}

// GrantStore keeps the entity grants of members.
type GrantStore interface {
	SetGrants(ctx context.Context, ownerID, userID string, entityIDs []string) error
	GrantedIDs(ctx context.Context, ownerID, userID string) ([]string, error)
}
