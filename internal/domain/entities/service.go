package entities

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/scope"
	"github.com/google/uuid"
)

const (
	maxNameLength        = 80
	maxDescriptionLength = 500
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns every entity of the owner.
func (s *Service) ListAll(ctx context.Context, ownerID string) ([]Entity, error) {
	items, err := s.repo.ListEntities(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

// ListForPrincipal is the entity picker: owners get all their entities and
// members only the granted ones.
func (s *Service) ListForPrincipal(ctx context.Context, principal scope.Principal) ([]Entity, error) {
	var (
		items []Entity
		err   error
	)
	if principal.IsOwner() {
		items, err = s.repo.ListEntities(ctx, principal.EffectiveOwner())
	} else {
		items, err = s.repo.ListGrantedEntities(ctx, principal.EffectiveOwner(), principal.UserID())
	}
	if err != nil {
		return nil, err
	}
	return nonNil(items), nil
}

// AllowedIDs narrows requested to the ids the principal may read, keeping
// the request order. It never widens: an empty request stays empty.
func (s *Service) AllowedIDs(ctx context.Context, principal scope.Principal, requested []string) ([]string, error) {
	ids := normalizeIDs(requested)
	if len(ids) == 0 || !principal.Valid() {
		return []string{}, nil
	}

	var (
		permitted []string
		err       error
	)
	if principal.IsOwner() {
		permitted, err = s.repo.FilterOwnedIDs(ctx, principal.EffectiveOwner(), ids)
	} else {
		permitted, err = s.repo.FilterGrantedIDs(ctx, principal.EffectiveOwner(), principal.UserID(), ids)
	}
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]struct{}, len(permitted))
	for _, id := range permitted {
		lookup[id] = struct{}{}
	}
	allowed := make([]string, 0, len(permitted))
	for _, id := range ids {
		if _, ok := lookup[id]; ok {
			allowed = append(allowed, id)
		}
	}
	return allowed, nil
}

func (s *Service) Get(ctx context.Context, ownerID, entityID string) (*Entity, error) {
	return s.repo.GetEntityByID(ctx, ownerID, entityID)
}

func (s *Service) Create(ctx context.Context, ownerID string, input Input) (*Entity, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	entity := Entity{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.CreateEntity(ctx, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *Service) Update(ctx context.Context, ownerID, entityID string, input Input) (*Entity, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.GetEntityByID(ctx, ownerID, entityID)
	if err != nil {
		return nil, err
	}
	entity.Name = input.Name
	entity.Description = input.Description
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEntity(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, entityID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		inUse, err := tx.CountEntriesByEntityID(ctx, ownerID, entityID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrEntityInUse
		}

		deleted, err := tx.DeleteEntity(ctx, ownerID, entityID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrEntityNotFound
		}
		return nil
	})
}

// SetGrants replaces the entities granted to userID. Every id must belong to
// ownerID.
func (s *Service) SetGrants(ctx context.Context, ownerID, userID string, entityIDs []string) error {
	ids := normalizeIDs(entityIDs)
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if len(ids) > 0 {
			owned, err := tx.FilterOwnedIDs(ctx, ownerID, ids)
			if err != nil {
				return err
			}
			if len(owned) != len(ids) {
				return ErrEntityNotFound
			}
		}
		return tx.ReplaceGrants(ctx, userID, ids)
	})
}

func (s *Service) GrantedIDs(ctx context.Context, ownerID, userID string) ([]string, error) {
	items, err := s.repo.ListGrantedEntities(ctx, ownerID, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func validateInput(input Input) (Input, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" {
		return input, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(input.Name)) > maxNameLength {
		return input, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLength)
	}
	if len([]rune(input.Description)) > maxDescriptionLength {
		return input, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	return input, nil
}

func normalizeIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		value := strings.TrimSpace(id)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func nonNil(items []Entity) []Entity {
	if items == nil {
		return []Entity{}
	}
	return items
}
