package catalog

import (
	"errors"
	"net/http"
	"time"

	entitiesdomain "finance-tracker-go/internal/domain/entities"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

type entityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MyEntities is the entity picker: owners get every entity and members only
// the granted ones.
func (h *Handlers) MyEntities(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.Entities.ListForPrincipal(r.Context(), principal)
	if err != nil {
		h.writeEntityError(w, "entities.mine", err, "user_id", principal.UserID())
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": toEntityResponses(items)})
}

func (h *Handlers) ListEntities(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.Entities.ListAll(r.Context(), principal.EffectiveOwner())
	if err != nil {
		h.writeEntityError(w, "entities.list", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": toEntityResponses(items)})
}

func (h *Handlers) GetEntity(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	entityID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "entity_not_found", "entity not found")
		return
	}
	entity, err := h.Entities.Get(r.Context(), principal.EffectiveOwner(), entityID)
	if err != nil {
		h.writeEntityError(w, "entities.get", err, "entity_id", entityID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toEntityResponse(*entity))
}

func (h *Handlers) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
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

	entity, err := h.Entities.Create(r.Context(), principal.EffectiveOwner(), entitiesdomain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeEntityError(w, "entities.create", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusCreated, toEntityResponse(*entity))
}

func (h *Handlers) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
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

	entityID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "entity_not_found", "entity not found")
		return
	}
	entity, err := h.Entities.Update(r.Context(), principal.EffectiveOwner(), entityID, entitiesdomain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeEntityError(w, "entities.update", err, "entity_id", entityID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toEntityResponse(*entity))
}

func (h *Handlers) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	entityID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "entity_not_found", "entity not found")
		return
	}
	if err := h.Entities.Delete(r.Context(), principal.EffectiveOwner(), entityID); err != nil {
		h.writeEntityError(w, "entities.delete", err, "entity_id", entityID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeEntityError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, entitiesdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, args...)
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, entitiesdomain.ErrEntityNotFound):
		h.log.BusinessError(op+": entity not found", err, args...)
		common.WriteError(w, http.StatusNotFound, "entity_not_found", "entity not found")
	case errors.Is(err, entitiesdomain.ErrEntityInUse):
		h.log.BusinessError(op+": entity in use", err, args...)
		common.WriteError(w, http.StatusConflict, "entity_in_use", "entity has cash flow entries")
	default:
		h.log.InternalError(op+": failed", err, args...)
		common.InternalError(w)
	}
}

func toEntityResponse(entity entitiesdomain.Entity) entityResponse {
	return entityResponse{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func toEntityResponses(items []entitiesdomain.Entity) []entityResponse {
	response := make([]entityResponse, 0, len(items))
	for _, entity := range items {
		response = append(response, toEntityResponse(entity))
	}
	return response
}
