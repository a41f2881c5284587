package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
	"floracrm/internal/order/repository"
)

var timeRangePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)

type LedgerService interface {
	List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	Detail(ctx context.Context, id uint) (*dto.OrderDetailResponse, error)
	History(ctx context.Context, orderID uint) ([]domain.OrderHistory, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id uint, o domain.Order) (*domain.Order, error)
	Patch(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, rawStatus string, comment string) (*domain.Order, *domain.OrderHistory, error)
	Delete(ctx context.Context, id uint) error
}

type ItemMutator interface {
	AddItem(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, orderID uint, itemID uint) error
}

type OrderController struct {
	ledger LedgerService
	items  ItemMutator
	logger *zap.Logger
}

func NewOrderController(ledger LedgerService, items ItemMutator, logger *zap.Logger) *OrderController {
	return &OrderController{ledger: ledger, items: items, logger: logger}
}

func (c *OrderController) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	filter := repository.OrderFilter{
		Skip:  skip,
		Limit: limit,
	}

	// Status filters accept the same aliases as writes, "ОПЛАЧЕН" and
	// "paid" select the same orders.
	if raw := r.URL.Query().Get("status"); raw != "" {
		filter.Status = string(domain.NormalizeStatus(raw))
	}

	if v := r.URL.Query().Get("client_id"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed > 0 {
			clientID := uint(parsed)
			filter.ClientID = &clientID
		}
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &parsed
		}
	}

	orders, err := c.ledger.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponses(orders))
}

func (c *OrderController) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	detail, err := c.ledger.Detail(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, detail)
}

func (c *OrderController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, validationErr := c.orderFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	created, err := c.ledger.Create(r.Context(), *order)
	if err != nil {
		c.handleError(w, err)
		return
	}

	logger.Info("order created", zap.Uint("orderId", created.ID))
	c.writeJSON(w, http.StatusCreated, dto.NewOrderResponse(*created))
}

func (c *OrderController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, validationErr := c.orderFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	updated, err := c.ledger.Update(r.Context(), id, *order)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(*updated))
}

// HandlePatch applies a partial update. The body may only carry whitelisted
// fields; unknown keys reject the whole request.
func (c *OrderController) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var patch dto.PatchOrderRequest
	if err := decoder.Decode(&patch); err != nil {
		c.writeValidationError(w, "invalid patch body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "body must be valid JSON containing only patchable order fields",
		})
		return
	}

	if validationErr := c.validatePatch(patch); validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	updated, err := c.ledger.Patch(r.Context(), id, patch)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(*updated))
}

func (c *OrderController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Status) == "" {
		c.writeValidationError(w, "validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	order, _, err := c.ledger.UpdateStatus(r.Context(), id, req.Status, comment)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}

func (c *OrderController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	if err := c.ledger.Delete(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (c *OrderController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	history, err := c.ledger.History(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]dto.HistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, dto.NewHistoryResponse(h))
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *OrderController) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.ProductID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "product_id",
			Message: "product_id is required",
		})
	}
	if req.Quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, "validation failed", details...)
		return
	}

	item, err := c.items.AddItem(r.Context(), id, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewOrderItemResponse(*item))
}

func (c *OrderController) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseOrderID(w, r)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || itemID == 0 {
		c.writeValidationError(w, "invalid itemId", apperrors.ValidationDetail{
			Field:   "itemId",
			Message: "itemId must be a positive integer",
		})
		return
	}

	if err := c.items.RemoveItem(r.Context(), id, uint(itemID)); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Order item deleted successfully"})
}

func (c *OrderController) orderFromRequest(req dto.CreateOrderRequest) (*domain.Order, *apperrors.ValidationError) {
	var details []apperrors.ValidationDetail

	if req.ClientID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "client_id",
			Message: "client_id is required",
		})
	}
	if req.RecipientID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "recipient_id",
			Message: "recipient_id is required",
		})
	}
	if req.DeliveryDate == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "delivery_date",
			Message: "delivery_date is required",
		})
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "delivery_address",
			Message: "delivery_address is required",
		})
	}
	if req.DeliveryTimeRange != nil && !timeRangePattern.MatchString(*req.DeliveryTimeRange) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "delivery_time_range",
			Message: "delivery_time_range must be in format HH:MM-HH:MM",
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &domain.Order{
		ClientID:          req.ClientID,
		RecipientID:       req.RecipientID,
		ExecutorID:        req.ExecutorID,
		Status:            domain.NormalizeStatus(req.Status),
		DeliveryDate:      *req.DeliveryDate,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryTimeRange: req.DeliveryTimeRange,
		Comment:           req.Comment,
	}, nil
}

func (c *OrderController) validatePatch(patch dto.PatchOrderRequest) *apperrors.ValidationError {
	var details []apperrors.ValidationDetail

	if patch.ClientID != nil && *patch.ClientID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "client_id",
			Message: "client_id must be a positive integer",
		})
	}
	if patch.RecipientID != nil && *patch.RecipientID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "recipient_id",
			Message: "recipient_id must be a positive integer",
		})
	}
	if patch.DeliveryAddress != nil && strings.TrimSpace(*patch.DeliveryAddress) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "delivery_address",
			Message: "delivery_address must not be empty",
		})
	}
	if patch.DeliveryTimeRange != nil && !timeRangePattern.MatchString(*patch.DeliveryTimeRange) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "delivery_time_range",
			Message: "delivery_time_range must be in format HH:MM-HH:MM",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "orderId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *OrderController) handleError(w http.ResponseWriter, err error) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, "NOT_FOUND", nfe.Message)
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", ce.Message)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if de, ok := apperrors.IsDeadlockError(err); ok {
		c.writeError(w, http.StatusConflict, "DEADLOCK", de.Message)
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

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, code string, message string) {
	c.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
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
