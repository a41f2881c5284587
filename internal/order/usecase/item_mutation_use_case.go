package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
)

type LedgerService interface {
	AddItem(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, orderID uint, itemID uint) error
}

// ItemMutationUseCase retries item add/remove when MySQL aborts the
// transaction with a deadlock or lock-wait timeout. Item mutations
// touch both order_items and the order's total under RepeatableRead,
// so concurrent writers on the same order can collide.
type ItemMutationUseCase struct {
	ledger           LedgerService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewItemMutationUseCase(ledger LedgerService, logger *zap.Logger, maxRetryAttempts int) *ItemMutationUseCase {
	return &ItemMutationUseCase{
		ledger:           ledger,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *ItemMutationUseCase) AddItem(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
	var item *domain.OrderItem
	err := uc.withRetry(ctx, orderID, func() error {
		var err error
		item, err = uc.ledger.AddItem(ctx, orderID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemMutationUseCase) RemoveItem(ctx context.Context, orderID uint, itemID uint) error {
	return uc.withRetry(ctx, orderID, func() error {
		return uc.ledger.RemoveItem(ctx, orderID, itemID)
	})
}

func (uc *ItemMutationUseCase) withRetry(ctx context.Context, orderID uint, op func() error) error {
	maxAttempts := uc.maxRetryAttempts
	// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms).
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				// Jitter: ±20% of backoff base.
				jitter := backoffs[attempt-1] * time.Duration(0.8+rand.Float64()*0.4)
				time.Sleep(backoffs[attempt-1] + jitter)
				uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Uint("orderId", orderID))
				continue
			}
			break
		}

		return err
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
