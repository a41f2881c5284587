package service

import (
	"context"

	"floracrm/internal/domain"
	"floracrm/internal/inventory/repository"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Inventory, error)
	List(ctx context.Context, filter repository.InventoryFilter) ([]domain.Inventory, error)
	Insert(ctx context.Context, item domain.Inventory) (uint, error)
	Update(ctx context.Context, item domain.Inventory) error
	Delete(ctx context.Context, id uint) error
}

type InventoryService struct {
	repo Repository
}

func NewInventoryService(repo Repository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) List(ctx context.Context, filter repository.InventoryFilter) ([]domain.Inventory, error) {
	return s.repo.List(ctx, filter)
}

func (s *InventoryService) Get(ctx context.Context, id uint) (*domain.Inventory, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) Create(ctx context.Context, item domain.Inventory) (*domain.Inventory, error) {
	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) Update(ctx context.Context, id uint, item domain.Inventory) (*domain.Inventory, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.ID = id
	item.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
