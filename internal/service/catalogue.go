package service

import (
	"context"
	"fmt"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository"
)

var (
	ErrStockItemNotFound = repository.ErrStockItemNotFound
	ErrZeroRemaining     = repository.ErrZeroRemaining
	ErrNotItemOwner      = repository.ErrNotItemOwner
)

type CatalogueStockRepository interface {
	FindAll(ctx context.Context, forSaleOnly bool) ([]domain.StockItem, error)
	FindWithdrawable(ctx context.Context, sellerEmail string) ([]domain.StockItem, error)
	ToggleForSale(ctx context.Context, id uint) (domain.StockItem, error)
	Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (domain.StockItem, bool, error)
}

type CatalogueService struct {
	repo CatalogueStockRepository
}

func NewCatalogueService(repo CatalogueStockRepository) *CatalogueService {
	return &CatalogueService{
		repo: repo,
	}
}

func (s *CatalogueService) List(ctx context.Context, forSaleOnly bool) ([]domain.StockItem, error) {
	items, err := s.repo.FindAll(ctx, forSaleOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return items, nil
}

func (s *CatalogueService) ListWithdrawable(ctx context.Context, sellerEmail string) ([]domain.StockItem, error) {
	items, err := s.repo.FindWithdrawable(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWithdrawable -> %w", err)
	}

	return items, nil
}

func (s *CatalogueService) ToggleForSale(ctx context.Context, id uint) (domain.StockItem, error) {
	item, err := s.repo.ToggleForSale(ctx, id)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("s.repo.ToggleForSale -> %w", err)
	}

	return item, nil
}

// Withdraw returns the updated item and whether the whole row was removed.
func (s *CatalogueService) Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (domain.StockItem, bool, error) {
	if count <= 0 {
		return domain.StockItem{}, false, ErrInvalidQuantity
	}

	item, removed, err := s.repo.Withdraw(ctx, id, sellerEmail, count)
	if err != nil {
		return domain.StockItem{}, false, fmt.Errorf("s.repo.Withdraw -> %w", err)
	}

	return item, removed, nil
}
