package product

import (
	"database/sql"

	"go.uber.org/zap"

	"floracrm/internal/product/repository"
	"floracrm/internal/product/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	svc := service.NewProductService(repo)
	return NewController(svc, logger)
}
