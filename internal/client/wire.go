package client

import (
	"database/sql"

	"go.uber.org/zap"

	"floracrm/internal/client/repository"
	"floracrm/internal/client/service"
	orderrepo "floracrm/internal/order/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLClientRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	svc := service.NewClientService(repo, orderRepo)
	return NewController(svc, logger)
}
