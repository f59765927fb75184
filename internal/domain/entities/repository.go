package entities

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListEntities(ctx context.Context, ownerID string) ([]Entity, error)
	ListGrantedEntities(ctx context.Context, ownerID, userID string) ([]Entity, error)
	GetEntityByID(ctx context.Context, ownerID, entityID string) (*Entity, error)
	CreateEntity(ctx context.Context, entity *Entity) error
	UpdateEntity(ctx context.Context, entity *Entity) error
	DeleteEntity(ctx context.Context, ownerID, entityID string) (bool, error)
	CountEntriesByEntityID(ctx context.Context, ownerID, entityID string) (int64, error)
	// FilterOwnedIDs returns the subset of ids owned by ownerID.
	FilterOwnedIDs(ctx context.Context, ownerID string, ids []string) ([]string, error)
	// FilterGrantedIDs returns the subset of ids owned by ownerID and granted
	// to userID.
	FilterGrantedIDs(ctx context.Context, ownerID, userID string, ids []string) ([]string, error)
	ReplaceGrants(ctx context.Context, userID string, entityIDs []string) error
}
