// Package scope resolves the data partition a caller acts in. Every row in
// the system belongs to a top-level owner account; members act on behalf of
// their owner and never own rows themselves.
package scope

import (
	"context"
	"errors"
	"strings"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Kind int

const (
	KindOwner Kind = iota + 1
	KindMember
)

func (k Kind) String() string {
	switch k {
	case KindOwner:
		return "owner"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// Principal is either an Owner{id} or a Member{id, ownerID}. The zero value
// is not a valid principal.
type Principal struct {
	kind    Kind
	userID  string
	ownerID string
}

func NewOwner(id string) Principal {
	return Principal{kind: KindOwner, userID: id, ownerID: id}
}

func NewMember(id, ownerID string) Principal {
	return Principal{kind: KindMember, userID: id, ownerID: ownerID}
}

// Resolve turns an authenticated user id and its optional parent id into a
// principal. A parent equal to the user itself is treated as no parent.
func Resolve(userID, parentID string) (Principal, error) {
	userID = strings.TrimSpace(userID)
	parentID = strings.TrimSpace(parentID)
	if userID == "" {
		return Principal{}, ErrUnauthenticated
	}
	if parentID == "" || parentID == userID {
		return NewOwner(userID), nil
	}
	return NewMember(userID, parentID), nil
}

func (p Principal) Kind() Kind {
	return p.kind
}

func (p Principal) UserID() string {
	return p.userID
}

// EffectiveOwner is the owner id every row-level query must filter by.
func (p Principal) EffectiveOwner() string {
	return p.ownerID
}

func (p Principal) IsOwner() bool {
	return p.kind == KindOwner
}

func (p Principal) Valid() bool {
	return p.kind != 0 && p.userID != "" && p.ownerID != ""
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, principal)
}

func FromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(contextKey{}).(Principal)
	if !ok || !principal.Valid() {
		return Principal{}, false
	}
	return principal, true
}
