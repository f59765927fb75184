package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finance-tracker-go/internal/auth"
	"finance-tracker-go/internal/domain/scope"
	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/pkg/logger"
)

// SessionCookie carries the token for browser clients.
const SessionCookie = "user-token"

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, userID string) (*usersdomain.User, error)
}

type JWTAuth struct {
	tokens TokenParser
	users  UserLoader
	log    logger.Logger
}

type contextKey int

const userKey contextKey = iota

type User struct {
	ID       string
	Email    string
	ParentID string
}

func NewJWTAuth(tokens TokenParser, users UserLoader, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

// Middleware resolves the caller from a bearer token or the session cookie.
// The parent link is read from storage, not from the token, so a member
// detached after login loses its owner scope immediately.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := requestToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		log := logger.FromContext(r.Context(), a.log)
		claims, err := a.tokens.Parse(token)
		if err != nil {
			log.BusinessError("auth: token rejected", err)
			unauthorized(w)
			return
		}

		account, err := a.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, usersdomain.ErrUserNotFound) {
				log.BusinessError("auth: token user not found", err, "user_id", claims.UserID)
				unauthorized(w)
				return
			}
			log.InternalError("auth: load user failed", err, "user_id", claims.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		principal, err := account.Principal()
		if err != nil {
			unauthorized(w)
			return
		}

		user := User{ID: account.ID, Email: account.Email}
		if account.ParentID != nil {
			user.ParentID = *account.ParentID
		}

		ctx := scope.WithPrincipal(r.Context(), principal)
		ctx = WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOwner rejects members. It must run after Middleware.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := scope.FromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !principal.IsOwner() {
			writeError(w, http.StatusForbidden, "forbidden", "owner account required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		return bearerToken(header)
	}
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	return cookie.Value, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func PrincipalFromContext(ctx context.Context) (scope.Principal, bool) {
	return scope.FromContext(ctx)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
