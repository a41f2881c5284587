package client

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"floracrm/internal/client/repository"
	"floracrm/internal/client/service"
	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Service interface {
	List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error)
	Get(ctx context.Context, id uint) (*domain.Client, error)
	Create(ctx context.Context, c domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id uint, c domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id uint) error
	Orders(ctx context.Context, id uint) (*service.ClientOrders, error)
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

	filter := repository.ClientFilter{
		Search:     r.URL.Query().Get("search"),
		ClientType: r.URL.Query().Get("client_type"),
		Skip:       skip,
		Limit:      limit,
	}

	if filter.ClientType != "" && !domain.IsValidClientType(filter.ClientType) {
		// Unknown type filters match nothing rather than erroring, the list
		// endpoint stays permissive.
		filter.ClientType = ""
	}

	clients, err := c.service.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, newClientResponse(cl))
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	cl, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, newClientResponse(*cl))
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	cl, validationErr := c.clientFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	created, err := c.service.Create(r.Context(), *cl)
	if err != nil {
		c.handleError(w, err)
		return
	}

	logger.Info("client created", zap.Uint("clientId", created.ID))
	c.writeJSON(w, http.StatusCreated, newClientResponse(*created))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	cl, validationErr := c.clientFromRequest(req)
	if validationErr != nil {
		c.writeValidationError(w, validationErr.Message, validationErr.Details...)
		return
	}

	updated, err := c.service.Update(r.Context(), id, *cl)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, newClientResponse(*updated))
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

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

func (c *Controller) HandleOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	result, err := c.service.Orders(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	resp := ClientOrdersResponse{
		Client:            newClientResponse(result.Client),
		OrdersAsCustomer:  dto.NewOrderResponses(result.AsCustomer),
		OrdersAsRecipient: dto.NewOrderResponses(result.AsRecipient),
		TotalOrders:       len(result.AsCustomer) + len(result.AsRecipient),
	}
	c.writeJSON(w, http.StatusOK, resp)
}

// clientFromRequest validates the request and normalizes the phone number
// to +7XXXXXXXXXX.
func (c *Controller) clientFromRequest(req CreateClientRequest) (*domain.Client, *apperrors.ValidationError) {
	var details []apperrors.ValidationDetail

	phone := ""
	if strings.TrimSpace(req.Phone) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone is required",
		})
	} else {
		normalized, ok := domain.NormalizePhone(req.Phone)
		if !ok {
			details = append(details, apperrors.ValidationDetail{
				Field:   "phone",
				Message: "phone must be in format +7XXXXXXXXXX",
			})
		}
		phone = normalized
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		trimmed := strings.TrimSpace(*req.Email)
		if !emailPattern.MatchString(trimmed) {
			details = append(details, apperrors.ValidationDetail{
				Field:   "email",
				Message: "invalid email format",
			})
		}
		req.Email = &trimmed
	}

	clientType := req.ClientType
	if clientType == "" {
		clientType = string(domain.ClientTypeBoth)
	}
	if !domain.IsValidClientType(clientType) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "client_type",
			Message: "client_type must be one of: заказчик, получатель, оба",
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &domain.Client{
		Name:       req.Name,
		Phone:      phone,
		Email:      req.Email,
		Address:    req.Address,
		ClientType: domain.ClientType(clientType),
		Notes:      req.Notes,
	}, nil
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "clientId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid clientId", apperrors.ValidationDetail{
			Field:   "clientId",
			Message: "clientId must be a positive integer",
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
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, "CONFLICT", ce.Message)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
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
