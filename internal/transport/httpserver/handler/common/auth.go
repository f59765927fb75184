package common

import (
	"errors"
	"net/http"
	"time"

	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/internal/transport/httpserver/middleware"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	ParentID *string `json:"parentId"`
	Role     string  `json:"role"`
}

type sessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usersdomain.ErrInvalidInput):
			h.log.BusinessError("auth.register: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, usersdomain.ErrEmailTaken):
			h.log.BusinessError("auth.register: email taken", err)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.log.InternalError("auth.register: create user failed", err)
			InternalError(w)
		}
		return
	}

	h.startSession(w, user, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		h.log.InternalError("auth.login: authenticate failed", err)
		InternalError(w)
		return
	}

	h.startSession(w, user, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	response := UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  principal.Kind().String(),
	}
	if user.ParentID != "" {
		parentID := user.ParentID
		response.ParentID = &parentID
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) startSession(w http.ResponseWriter, user *usersdomain.User, status int) {
	parentID := ""
	if user.ParentID != nil {
		parentID = *user.ParentID
	}

	token, expiresAt, err := h.Tokens.Issue(user.ID, parentID)
	if err != nil {
		h.log.InternalError("auth: issue token failed", err, "user_id", user.ID)
		InternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, status, sessionResponse{
		User:      ToUserResponse(*user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func ToUserResponse(user usersdomain.User) UserResponse {
	role := "owner"
	if user.ParentID != nil && *user.ParentID != user.ID {
		role = "member"
	}
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		ParentID: user.ParentID,
		Role:     role,
	}
}
