package order

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	clientrepo "floracrm/internal/client/repository"
	"floracrm/internal/order/controller"
	"floracrm/internal/order/repository"
	"floracrm/internal/order/service"
	"floracrm/internal/order/usecase"
	productrepo "floracrm/internal/product/repository"
)

const (
	txTimeout        = 5 * time.Second
	maxRetryAttempts = 3
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLOrderItemRepository(db)
	historyRepo := repository.NewMySQLOrderHistoryRepository(db)
	userRepo := repository.NewMySQLUserRepository(db)
	products := productrepo.NewMySQLProductRepository(db)
	clients := clientrepo.NewMySQLClientRepository(db)

	ledger := service.NewLedgerService(db, orderRepo, itemRepo, historyRepo, products, clients, userRepo, logger, txTimeout)
	items := usecase.NewItemMutationUseCase(ledger, logger, maxRetryAttempts)

	return controller.NewOrderController(ledger, items, logger)
}
