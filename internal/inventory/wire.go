package inventory

import (
	"database/sql"

	"go.uber.org/zap"

	"floracrm/internal/inventory/repository"
	"floracrm/internal/inventory/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLInventoryRepository(db)
	svc := service.NewInventoryService(repo)
	return NewController(svc, logger)
}
