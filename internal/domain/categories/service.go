package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/paging"
	"github.com/google/uuid"
)

const (
	maxNameLength        = 80
	maxDescriptionLength = 500
)

type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
	names           NameCache
	namesTTL        time.Duration
}

func NewService(repo Repository, defaultPageSize, maxPageSize int) *Service {
	return &Service{repo: repo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// WithNameCache makes ResolveNames reuse names for ttl. Renames and deletes
// drop the owner's entry.
func (s *Service) WithNameCache(cache NameCache, ttl time.Duration) *Service {
	s.names = cache
	s.namesTTL = ttl
	return s
}

func (s *Service) List(ctx context.Context, ownerID string, pageIndex, pageSize int) ([]Category, int64, error) {
	page, err := paging.Normalize(pageIndex, pageSize, s.defaultPageSize, s.maxPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: page index or size out of range", ErrInvalidInput)
	}

	items, total, err := s.repo.ListCategories(ctx, ownerID, page)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []Category{}
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, ownerID, categoryID string) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, ownerID, categoryID)
}

func (s *Service) Create(ctx context.Context, ownerID string, input Input) (*Category, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	category := Category{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) Update(ctx context.Context, ownerID, categoryID string, input Input) (*Category, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = input.Name
	category.Description = input.Description
	category.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.forgetNames(ownerID)
	return category, nil
}

// Delete refuses to remove a category that cash flow entries still
// reference.
func (s *Service) Delete(ctx context.Context, ownerID, categoryID string) error {
	defer s.forgetNames(ownerID)
	return s.repo.Transaction(ctx, func(tx Repository) error {
		inUse, err := tx.CountEntriesByCategoryID(ctx, ownerID, categoryID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}

		deleted, err := tx.DeleteCategory(ctx, ownerID, categoryID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// ResolveNames returns the names of the owner's categories among ids.
// Unknown ids are absent from the result.
func (s *Service) ResolveNames(ctx context.Context, ownerID string, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var cached map[string]string
	if s.names != nil {
		cached, _ = s.names.GetByOwnerID(ownerID)
	}
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := cached[id]; ok {
			names[id] = name
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return names, nil
	}

	items, err := s.repo.GetCategoriesByIDs(ctx, ownerID, missing)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		names[item.ID] = item.Name
	}

	if s.names != nil && len(items) > 0 {
		merged := make(map[string]string, len(cached)+len(items))
		for id, name := range cached {
			merged[id] = name
		}
		for _, item := range items {
			merged[item.ID] = item.Name
		}
		s.names.SetByOwnerID(ownerID, merged, s.namesTTL)
	}
	return names, nil
}

func (s *Service) forgetNames(ownerID string) {
	if s.names != nil {
		s.names.DeleteByOwnerID(ownerID)
	}
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
