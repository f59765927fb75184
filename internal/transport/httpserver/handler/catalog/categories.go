package catalog

import (
	"errors"
	"net/http"
	"time"

	categoriesdomain "finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/transport/httpserver/handler/common"
)

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	pageIndex, err := common.ParseIntParam(query.Get("page_index"), 0)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid page_index")
		return
	}
	pageSize, err := common.ParseIntParam(query.Get("page_size"), 0)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid page_size")
		return
	}

	ownerID := principal.EffectiveOwner()
	items, total, err := h.Categories.List(r.Context(), ownerID, pageIndex, pageSize)
	if err != nil {
		h.writeCategoryError(w, "categories.list", err, "owner_id", ownerID)
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, category := range items {
		response = append(response, toCategoryResponse(category))
	}
	common.WriteJSON(w, http.StatusOK, listResponse{Items: response, Total: total, PageIndex: pageIndex})
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	categoryID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "category_not_found", "category not found")
		return
	}
	category, err := h.Categories.Get(r.Context(), principal.EffectiveOwner(), categoryID)
	if err != nil {
		h.writeCategoryError(w, "categories.get", err, "category_id", categoryID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
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

	category, err := h.Categories.Create(r.Context(), principal.EffectiveOwner(), categoriesdomain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeCategoryError(w, "categories.create", err, "owner_id", principal.EffectiveOwner())
		return
	}
	common.WriteJSON(w, http.StatusCreated, toCategoryResponse(*category))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
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

	categoryID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "category_not_found", "category not found")
		return
	}
	category, err := h.Categories.Update(r.Context(), principal.EffectiveOwner(), categoryID, categoriesdomain.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeCategoryError(w, "categories.update", err, "category_id", categoryID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := common.PrincipalFromRequest(w, r)
	if !ok {
		return
	}

	categoryID, ok := common.PathID(r)
	if !ok {
		common.WriteError(w, http.StatusNotFound, "category_not_found", "category not found")
		return
	}
	if err := h.Categories.Delete(r.Context(), principal.EffectiveOwner(), categoryID); err != nil {
		h.writeCategoryError(w, "categories.delete", err, "category_id", categoryID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeCategoryError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, categoriesdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, args...)
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, args...)
		common.WriteError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, categoriesdomain.ErrCategoryInUse):
		h.log.BusinessError(op+": category in use", err, args...)
		common.WriteError(w, http.StatusConflict, "category_in_use", "category has cash flow entries")
	default:
		h.log.InternalError(op+": failed", err, args...)
		common.InternalError(w)
	}
}

func toCategoryResponse(category categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
