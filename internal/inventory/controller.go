package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"floracrm/internal/domain"
	apperrors "floracrm/internal/errors"
	"floracrm/internal/inventory/repository"
)

type Service interface {
	List(ctx context.Context, filter repository.InventoryFilter) ([]domain.Inventory, error)
	Get(ctx context.Context, id uint) (*domain.Inventory, error)
	Create(ctx context.Context, item domain.Inventory) (*domain.Inventory, error)
	Update(ctx context.Context, id uint, item domain.Inventory) (*domain.Inventory, error)
	Delete(ctx context.Context, id uint) error
}

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	q := r.URL.Query()

	filter := repository.InventoryFilter{
		LowStock: q.Get("low_stock") == "true",
		Search:   q.Get("search"),
		Skip:     skip,
		Limit:    limit,
	}

	items, err := c.service.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]InventoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newInventoryResponse(item))
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	item, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, newInventoryResponse(*item))
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, validationErr := c.inventoryFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	created, err := c.service.Create(r.Context(), *item)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, newInventoryResponse(*created))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	var req CreateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	item, validationErr := c.inventoryFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	updated, err := c.service.Update(r.Context(), id, *item)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, newInventoryResponse(*updated))
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Inventory item deleted successfully"})
}

func (c *Controller) inventoryFromRequest(req CreateInventoryRequest) (*domain.Inventory, *apperrors.ValidationError) {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Quantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be non-negative",
		})
	}

	if strings.TrimSpace(req.Unit) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "unit",
			Message: "unit is required",
		})
	}

	if req.MinQuantity != nil && *req.MinQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "min_quantity",
			Message: "min_quantity must be non-negative",
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &domain.Inventory{
		Name:         strings.TrimSpace(req.Name),
		Quantity:     req.Quantity,
		Unit:         strings.TrimSpace(req.Unit),
		MinQuantity:  req.MinQuantity,
		PricePerUnit: req.PricePerUnit,
	}, nil
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "inventoryId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid inventoryId", apperrors.ValidationDetail{
			Field:   "inventoryId",
			Message: "inventoryId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nfe.Message)
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeError(w http.ResponseWriter, status int, code string, message string) {
	c.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func parsePagination(r *http.Request) (skip int, limit int) {
	skip = 0
	limit = 100

	if v := r.URL.Query().Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			skip = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 1000 {
			limit = parsed
		}
	}
	return skip, limit
}
