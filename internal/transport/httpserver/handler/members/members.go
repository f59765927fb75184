package members

import (
	"errors"
	"net/http"

	entitiesdomain "finance-tracker-go/internal/domain/entities"
	usersdomain "finance-tracker-go/internal/domain/users"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

type createMemberRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type permissionsRequest struct {
	EntityIDs []string `json:"entityIds" validate:"max=500,dive,uuid"`
}

type memberResponse struct {
	common.UserResponse
	EntityIDs []string `json:"entityIds"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	members, err := h.Users.ListMembers(r.Context(), principal.EffectiveOwner())
	if err != nil {
		h.writeMemberError(w, "users.list", err, "owner_id", principal.EffectiveOwner())
		return
	}

	response := make([]common.UserResponse, 0, len(members))
	for _, member := range members {
		response = append(response, common.ToUserResponse(member))
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": response})
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	member, err := h.Users.CreateMember(r.Context(), principal, req.Email, req.Password)
	if err != nil {
		h.writeMemberError(w, "users.create", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusCreated, memberResponse{
		UserResponse: common.ToUserResponse(*member),
		EntityIDs:    []string{},
	})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	memberID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	member, err := h.Users.GetWithGrants(r.Context(), principal.EffectiveOwner(), memberID)
	if err != nil {
		h.writeMemberError(w, "users.get", err, "member_id", memberID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	memberID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	if err := h.Users.RemoveMember(r.Context(), principal.EffectiveOwner(), memberID); err != nil {
		h.writeMemberError(w, "users.delete", err, "member_id", memberID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPermissions replaces the entities the member may see.
func (h *Handlers) SetPermissions(w http.ResponseWriter, r *http.Request) {
	var req permissionsRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := common.ValidateRequest(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	memberID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "user_not_found", "user not found")
		return
	}
	member, err := h.Users.SetPermissions(r.Context(), principal.EffectiveOwner(), memberID, req.EntityIDs)
	if err != nil {
		h.writeMemberError(w, "users.permissions", err, "member_id", memberID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

func (h *Handlers) writeMemberError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, usersdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, args...)
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, usersdomain.ErrUserNotFound):
		h.log.BusinessError(op+": user not found", err, args...)
		common.WriteError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, usersdomain.ErrEmailTaken):
		h.log.BusinessError(op+": email taken", err, args...)
		common.WriteError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, entitiesdomain.ErrEntityNotFound):
		h.log.BusinessError(op+": entity not found", err, args...)
		common.WriteError(w, http.StatusNotFound, "entity_not_found", "entity not found")
	default:
		h.log.InternalError(op+": failed", err, args...)
		common.InternalError(w)
	}
}

func toMemberResponse(member *usersdomain.MemberWithGrants) memberResponse {
	ids := member.EntityIDs
	if ids == nil {
		ids = []string{}
	}
	return memberResponse{
		UserResponse: common.ToUserResponse(member.User),
		EntityIDs:    ids,
	}
}
