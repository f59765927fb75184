package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"finance-tracker-go/internal/domain/scope"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt ignores everything after 72 bytes.
	maxPasswordLength = 72
)

type Service struct {
	repo     Repository
	grants   GrantStore
	hashCost int
}

func NewService(repo Repository, grants GrantStore) *Service {
	return &Service{repo: repo, grants: grants, hashCost: bcrypt.DefaultCost}
}

// Register creates a top-level owner account.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	return s.create(ctx, email, password, nil)
}

// Authenticate returns the user for valid credentials. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateMember adds a sub-user under the caller's owner account. A member
// creating another member still attaches it to the owner.
func (s *Service) CreateMember(ctx context.Context, principal scope.Principal, email, password string) (*User, error) {
	ownerID := principal.EffectiveOwner()
	if ownerID == "" {
		return nil, scope.ErrUnauthenticated
	}
	return s.create(ctx, email, password, &ownerID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) ListMembers(ctx context.Context, ownerID string) ([]User, error) {
	members, err := s.repo.ListMembers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []User{}
	}
	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, ownerID, memberID string) error {
	if memberID == ownerID {
		return fmt.Errorf("%w: an owner cannot remove itself", ErrInvalidInput)
	}
	deleted, err := s.repo.DeleteMember(ctx, ownerID, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) GetWithGrants(ctx context.Context, ownerID, memberID string) (*MemberWithGrants, error) {
	member, err := s.repo.GetMember(ctx, ownerID, memberID)
	if err != nil {
		return nil, err
	}
	ids, err := s.grants.GrantedIDs(ctx, ownerID, memberID)
	if err != nil {
		return nil, err
	}
	return &MemberWithGrants{User: *member, EntityIDs: ids}, nil
}

// SetPermissions replaces the entities a member may access.
func (s *Service) SetPermissions(ctx context.Context, ownerID, memberID string, entityIDs []string) (*MemberWithGrants, error) {
	member, err := s.repo.GetMember(ctx, ownerID, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.grants.SetGrants(ctx, ownerID, member.ID, entityIDs); err != nil {
		return nil, err
	}
	ids, err := s.grants.GrantedIDs(ctx, ownerID, member.ID)
	if err != nil {
		return nil, err
	}
	return &MemberWithGrants{User: *member, EntityIDs: ids}, nil
}

func (s *Service) create(ctx context.Context, email, password string, parentID *string) (*User, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		ParentID:     parentID,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func validateCredentials(email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return "", fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLength)
	}
	return email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
