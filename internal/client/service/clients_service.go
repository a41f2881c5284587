package service

import (
	"context"
	"fmt"

	"floracrm/internal/client/repository"
	"floracrm/internal/domain"
	"floracrm/internal/errors"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error)
	Insert(ctx context.Context, c domain.Client) (uint, error)
	Update(ctx context.Context, c domain.Client) error
	Delete(ctx context.Context, id uint) error
}

// OrderReader resolves a client's orders; implemented by the order
// repository. Clients and orders are referenced-not-owned, so deletion must
// be refused while orders still point at the client.
type OrderReader interface {
	FindByClient(ctx context.Context, clientID uint) ([]domain.Order, error)
	FindByRecipient(ctx context.Context, clientID uint) ([]domain.Order, error)
	CountByClient(ctx context.Context, clientID uint) (int, error)
}

type ClientOrders struct {
	Client      domain.Client
	AsCustomer  []domain.Order
	AsRecipient []domain.Order
}

type ClientService struct {
	repo   Repository
	orders OrderReader
}

func NewClientService(repo Repository, orders OrderReader) *ClientService {
	return &ClientService{repo: repo, orders: orders}
}

func (s *ClientService) List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	return s.repo.List(ctx, filter)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	existing, err := s.repo.FindByPhone(ctx, c.Phone)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); !ok {
			return nil, err
		}
	}
	if existing != nil {
		return nil, errors.NewConflictError("client with this phone already exists")
	}

	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id uint, c domain.Client) (*domain.Client, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Phone != existing.Phone {
		other, err := s.repo.FindByPhone(ctx, c.Phone)
		if err != nil {
			if _, ok := errors.IsNotFoundError(err); !ok {
				return nil, err
			}
		}
		if other != nil {
			return nil, errors.NewConflictError("client with this phone already exists")
		}
	}

	c.ID = id
	c.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.orders.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.NewConflictError(fmt.Sprintf("cannot delete client with %d orders", count))
	}

	return s.repo.Delete(ctx, id)
}

func (s *ClientService) Orders(ctx context.Context, id uint) (*ClientOrders, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	asCustomer, err := s.orders.FindByClient(ctx, id)
	if err != nil {
		return nil, err
	}

	asRecipient, err := s.orders.FindByRecipient(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ClientOrders{
		Client:      *client,
		AsCustomer:  asCustomer,
		AsRecipient: asRecipient,
	}, nil
}
