package service

import (
	"context"
	"fmt"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
	"floracrm/internal/product/repository"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (uint, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uint) error
	CountOrderItems(ctx context.Context, productID uint) (int, error)
}

type ProductService struct {
	repo Repository
}

func NewProductService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id uint, p domain.Product) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ID = id
	p.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.NewConflictError(fmt.Sprintf("cannot delete product referenced by %d order items", count))
	}

	return s.repo.Delete(ctx, id)
}
