package usecase

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
)

// Helper to create a MySQL deadlock error for testing
func createDeadlockError() error {
	return &mysql.MySQLError{Number: 1213}
}

type mockLedgerService struct {
	AddItemFunc    func(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error)
	RemoveItemFunc func(ctx context.Context, orderID uint, itemID uint) error
}

func (m *mockLedgerService) AddItem(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
	return m.AddItemFunc(ctx, orderID, req)
}

func (m *mockLedgerService) RemoveItem(ctx context.Context, orderID uint, itemID uint) error {
	return m.RemoveItemFunc(ctx, orderID, itemID)
}

func TestAddItem_Success(t *testing.T) {
	ctx := context.Background()

	ledger := &mockLedgerService{
		AddItemFunc: func(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
			return &domain.OrderItem{ID: 10, OrderID: orderID, ProductID: req.ProductID, Quantity: req.Quantity, Price: 18000}, nil
		},
	}

	uc := NewItemMutationUseCase(ledger, zap.NewNop(), 3)

	item, err := uc.AddItem(ctx, 1, dto.AddItemRequest{ProductID: 5, Quantity: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID != 10 {
		t.Errorf("expected item ID 10, got %d", item.ID)
	}
}

func TestAddItem_NotFoundPassesThrough(t *testing.T) {
	ctx := context.Background()

	calls := 0
	ledger := &mockLedgerService{
		AddItemFunc: func(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
			calls++
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	uc := NewItemMutationUseCase(ledger, zap.NewNop(), 3)

	_, err := uc.AddItem(ctx, 1, dto.AddItemRequest{ProductID: 5, Quantity: 1})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call without retries, got %d", calls)
	}
}

func TestAddItem_DeadlockRetriesAndSucceeds(t *testing.T) {
	ctx := context.Background()

	calls := 0
	ledger := &mockLedgerService{
		AddItemFunc: func(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
			calls++
			if calls < 3 {
				return nil, createDeadlockError()
			}
			return &domain.OrderItem{ID: 7, OrderID: orderID}, nil
		},
	}

	uc := NewItemMutationUseCase(ledger, zap.NewNop(), 3)

	item, err := uc.AddItem(ctx, 1, dto.AddItemRequest{ProductID: 5, Quantity: 1})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if item.ID != 7 {
		t.Errorf("expected item ID 7, got %d", item.ID)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestAddItem_DeadlockExhaustsRetries(t *testing.T) {
	ctx := context.Background()

	calls := 0
	ledger := &mockLedgerService{
		AddItemFunc: func(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
			calls++
			return nil, createDeadlockError()
		},
	}

	uc := NewItemMutationUseCase(ledger, zap.NewNop(), 3)

	_, err := uc.AddItem(ctx, 1, dto.AddItemRequest{ProductID: 5, Quantity: 1})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsDeadlockError(err); !ok {
		t.Errorf("expected DeadlockError, got %T", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRemoveItem_LockWaitTimeoutRetries(t *testing.T) {
	ctx := context.Background()

	calls := 0
	ledger := &mockLedgerService{
		RemoveItemFunc: func(ctx context.Context, orderID uint, itemID uint) error {
			calls++
			if calls == 1 {
				return &mysql.MySQLError{Number: 1205}
			}
			return nil
		},
	}

	uc := NewItemMutationUseCase(ledger, zap.NewNop(), 3)

	if err := uc.RemoveItem(ctx, 1, 2); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestIsDeadlockError(t *testing.T) {
	if !isDeadlockError(&mysql.MySQLError{Number: 1213}) {
		t.Errorf("expected 1213 to be a deadlock error")
	}
	if !isDeadlockError(&mysql.MySQLError{Number: 1205}) {
		t.Errorf("expected 1205 to be a deadlock error")
	}
	if isDeadlockError(&mysql.MySQLError{Number: 1062}) {
		t.Errorf("expected 1062 not to be a deadlock error")
	}
	if isDeadlockError(context.DeadlineExceeded) {
		t.Errorf("expected non-mysql error not to be a deadlock error")
	}
}
