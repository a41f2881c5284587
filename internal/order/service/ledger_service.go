package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
	"floracrm/internal/order/repository"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error)
	Insert(ctx context.Context, tx *sql.Tx, o domain.Order) (uint, error)
	Update(ctx context.Context, tx *sql.Tx, o domain.Order) error
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status domain.OrderStatus) error
	UpdateTotalPrice(ctx context.Context, tx *sql.Tx, id uint, totalPrice float64) error
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint, error)
	FindByOrder(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
	FindByIDAndOrder(ctx context.Context, tx *sql.Tx, itemID uint, orderID uint) (*domain.OrderItem, error)
	Delete(ctx context.Context, tx *sql.Tx, itemID uint) error
	DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID uint) error
	SumByOrder(ctx context.Context, tx *sql.Tx, orderID uint) (float64, error)
}

type HistoryRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, h domain.OrderHistory) (uint, error)
	FindByOrder(ctx context.Context, orderID uint) ([]domain.OrderHistory, error)
	DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID uint) error
}

type ProductReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
}

type ClientReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// LedgerService owns every order mutation: status transitions with their
// audit trail, line-item changes with total-price recomputation, and the
// explicit delete cascade. Each mutation runs in a single transaction.
type LedgerService struct {
	db          TransactionManager
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	historyRepo HistoryRepository
	products    ProductReader
	clients     ClientReader
	users       UserReader
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewLedgerService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	historyRepo HistoryRepository,
	products ProductReader,
	clients ClientReader,
	users UserReader,
	logger *zap.Logger,
	txTimeout time.Duration,
) *LedgerService {
	return &LedgerService{
		db:          db,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
		products:    products,
		clients:     clients,
		users:       users,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

func (s *LedgerService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *LedgerService) Get(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *LedgerService) Detail(ctx context.Context, id uint) (*dto.OrderDetailResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.OrderDetailResponse{
		OrderResponse: dto.NewOrderResponse(*order),
		OrderItems:    []dto.OrderItemResponse{},
		History:       []dto.HistoryResponse{},
	}

	if client, err := s.clients.FindByID(ctx, order.ClientID); err == nil {
		detail.Client = dto.NewClientSummary(*client)
	}
	if recipient, err := s.clients.FindByID(ctx, order.RecipientID); err == nil {
		detail.Recipient = dto.NewClientSummary(*recipient)
	}
	if order.ExecutorID != nil {
		if executor, err := s.users.FindByID(ctx, *order.ExecutorID); err == nil {
			detail.Executor = dto.NewUserSummary(*executor)
		}
	}

	items, err := s.itemRepo.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		resp := dto.NewOrderItemResponse(item)
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			resp.Product = dto.NewProductSummary(*product)
		}
		detail.OrderItems = append(detail.OrderItems, resp)
	}

	history, err := s.historyRepo.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		detail.History = append(detail.History, dto.NewHistoryResponse(h))
	}

	return detail, nil
}

func (s *LedgerService) History(ctx context.Context, orderID uint) ([]domain.OrderHistory, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindByOrder(ctx, orderID)
}

func (s *LedgerService) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if err := s.checkReferences(ctx, o); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := s.orderRepo.Insert(txCtx, tx, o)
	if err != nil {
		return nil, err
	}

	o.ID = id
	if _, err := s.historyRepo.Insert(txCtx, tx, o.CreationHistory()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("order created", zap.Uint("orderId", id), zap.String("status", string(o.Status)))
	return s.orderRepo.FindByID(ctx, id)
}

func (s *LedgerService) Update(ctx context.Context, id uint, o domain.Order) (*domain.Order, error) {
	existing, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, o); err != nil {
		return nil, err
	}

	o.ID = id
	entry, changed := existing.TransitionTo(o.Status, "")

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.Update(txCtx, tx, o); err != nil {
		return nil, err
	}

	if changed {
		if _, err := s.historyRepo.Insert(txCtx, tx, *entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, id)
}

func (s *LedgerService) Patch(ctx context.Context, id uint, patch dto.PatchOrderRequest) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientID != nil {
		order.ClientID = *patch.ClientID
	}
	if patch.RecipientID != nil {
		order.RecipientID = *patch.RecipientID
	}
	if patch.ExecutorID != nil {
		order.ExecutorID = patch.ExecutorID
	}
	if patch.DeliveryDate != nil {
		order.DeliveryDate = *patch.DeliveryDate
	}
	if patch.DeliveryAddress != nil {
		order.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.DeliveryTimeRange != nil {
		order.DeliveryTimeRange = patch.DeliveryTimeRange
	}
	if patch.Comment != nil {
		order.Comment = patch.Comment
	}

	if err := s.checkReferences(ctx, *order); err != nil {
		return nil, err
	}

	var entry *domain.OrderHistory
	changed := false
	if patch.Status != nil {
		entry, changed = order.TransitionTo(domain.NormalizeStatus(*patch.Status), "")
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.Update(txCtx, tx, *order); err != nil {
		return nil, err
	}

	if changed {
		if _, err := s.historyRepo.Insert(txCtx, tx, *entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, id)
}

// UpdateStatus applies a status transition. Raw input is normalized first;
// a transition to the current state is a no-op and returns a nil history
// entry.
func (s *LedgerService) UpdateStatus(ctx context.Context, id uint, rawStatus string, comment string) (*domain.Order, *domain.OrderHistory, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	newStatus := domain.NormalizeStatus(rawStatus)
	entry, changed := order.TransitionTo(newStatus, comment)
	if !changed {
		return order, nil, nil
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateStatus(txCtx, tx, id, newStatus); err != nil {
		return nil, nil, err
	}

	historyID, err := s.historyRepo.Insert(txCtx, tx, *entry)
	if err != nil {
		return nil, nil, err
	}
	entry.ID = historyID

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	s.logger.Info("order status changed",
		zap.Uint("orderId", id),
		zap.String("oldStatus", string(*entry.OldStatus)),
		zap.String("newStatus", string(newStatus)),
	)

	return order, entry, nil
}

// Delete removes the order's items and history before the order itself;
// the cascade is explicit, all in one transaction.
func (s *LedgerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.itemRepo.DeleteByOrder(txCtx, tx, id); err != nil {
		return err
	}
	if err := s.historyRepo.DeleteByOrder(txCtx, tx, id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(txCtx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.Uint("orderId", id))
	return nil
}

// AddItem inserts a line item and recomputes the order total in the same
// transaction. The stored price is the explicit price when given and
// positive, otherwise a snapshot of the product's current price.
func (s *LedgerService) AddItem(ctx context.Context, orderID uint, req dto.AddItemRequest) (*domain.OrderItem, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	price := product.Price
	if req.Price != nil && *req.Price > 0 {
		price = *req.Price
	}

	item := domain.OrderItem{
		OrderID:   orderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     price,
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	itemID, err := s.itemRepo.Insert(txCtx, tx, item)
	if err != nil {
		return nil, err
	}
	item.ID = itemID

	total, err := s.itemRepo.SumByOrder(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateTotalPrice(txCtx, tx, orderID, total); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("order item added",
		zap.Uint("orderId", orderID),
		zap.Uint("productId", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Float64("totalPrice", total),
	)

	return &item, nil
}

// RemoveItem deletes a line item and recomputes the total in the same
// transaction. An order left without items has total 0.
func (s *LedgerService) RemoveItem(ctx context.Context, orderID uint, itemID uint) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	item, err := s.itemRepo.FindByIDAndOrder(txCtx, tx, itemID, orderID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(txCtx, tx, item.ID); err != nil {
		return err
	}

	total, err := s.itemRepo.SumByOrder(txCtx, tx, orderID)
	if err != nil {
		return err
	}
	if err := s.orderRepo.UpdateTotalPrice(txCtx, tx, orderID, total); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("order item removed",
		zap.Uint("orderId", orderID),
		zap.Uint("itemId", itemID),
		zap.Float64("totalPrice", total),
	)

	return nil
}

func (s *LedgerService) checkReferences(ctx context.Context, o domain.Order) error {
	if _, err := s.clients.FindByID(ctx, o.ClientID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return apperrors.NewNotFoundError("client not found")
		}
		return err
	}

	if _, err := s.clients.FindByID(ctx, o.RecipientID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return apperrors.NewNotFoundError("recipient not found")
		}
		return err
	}

	if o.ExecutorID != nil {
		if _, err := s.users.FindByID(ctx, *o.ExecutorID); err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return apperrors.NewNotFoundError("executor not found")
			}
			return err
		}
	}

	return nil
}
