package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
	"floracrm/internal/order/repository"
)

type mockLedger struct {
	PatchFunc func(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error)
}

func (m *mockLedger) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return nil, nil
}
func (m *mockLedger) Get(ctx context.Context, id uint) (*domain.Order, error) { return nil, nil }
func (m *mockLedger) Detail(ctx context.Context, id uint) (*dto.OrderDetailResponse, error) {
	return nil, nil
}
func (m *mockLedger) History(ctx context.Context, orderID uint) ([]domain.OrderHistory, error) {
	return nil, nil
}
func (m *mockLedger) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return nil, nil
}
func (m *mockLedger) Update(ctx context.Context, id uint, o domain.Order) (*domain.Order, error) {
	return nil, nil
}
func (m *mockLedger) Patch(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error) {
	return m.PatchFunc(ctx, id, patch)
}
func (m *mockLedger) UpdateStatus(ctx context.Context, id uint, rawStatus string, comment string) (*domain.Order, *domain.OrderHistory, error) {
	return nil, nil, nil
}
func (m *mockLedger) Delete(ctx context.Context, id uint) error { return nil }

func patchRequest(t *testing.T, ctrl *OrderController, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/1", strings.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", "1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	ctrl.HandlePatch(rec, req)
	return rec
}

func TestHandlePatch_UnknownFieldRejected(t *testing.T) {
	ledger := &mockLedger{
		PatchFunc: func(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error) {
			t.Fatal("service must not be called for an invalid patch")
			return nil, nil
		},
	}
	ctrl := NewOrderController(ledger, nil, zap.NewNop())

	rec := patchRequest(t, ctrl, `{"total_price": 100}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePatch_WhitelistedFieldAccepted(t *testing.T) {
	var got dto.PatchOrderRequest
	ledger := &mockLedger{
		PatchFunc: func(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error) {
			got = patch
			return &domain.Order{ID: id, Status: domain.StatusNew}, nil
		},
	}
	ctrl := NewOrderController(ledger, nil, zap.NewNop())

	rec := patchRequest(t, ctrl, `{"delivery_address": "пр. Достык 5"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got.DeliveryAddress == nil || *got.DeliveryAddress != "пр. Достык 5" {
		t.Errorf("expected delivery_address to reach the service, got %+v", got)
	}
}

func TestHandlePatch_InvalidTimeRange(t *testing.T) {
	ledger := &mockLedger{
		PatchFunc: func(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error) {
			t.Fatal("service must not be called for an invalid patch")
			return nil, nil
		},
	}
	ctrl := NewOrderController(ledger, nil, zap.NewNop())

	rec := patchRequest(t, ctrl, `{"delivery_time_range": "25:00-99:99"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
