package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository"
)

var (
	ErrStockItemNotForSale = repository.ErrStockItemNotForSale
	ErrInsufficientStock   = repository.ErrInsufficientStock
)

type SaleStockRepository interface {
	RegisterSale(ctx context.Context, id uint, quantity int) (domain.StockItem, error)
}

// SaleNotifier pushes registered sales to the live feed. A nil notifier
// disables the feed.
type SaleNotifier interface {
	Notify(event domain.SaleEvent)
}

type SaleService struct {
	repo     SaleStockRepository
	notifier SaleNotifier
}

func NewSaleService(repo SaleStockRepository, notifier SaleNotifier) *SaleService {
	return &SaleService{
		repo:     repo,
		notifier: notifier,
	}
}

// RegisterPurchase increments the item's sold quantity inside one row-locked
// transaction. Sales never exceed the remaining deposited quantity.
func (s *SaleService) RegisterPurchase(ctx context.Context, stockItemID uint, quantity int) (domain.StockItem, error) {
	if stockItemID == 0 {
		return domain.StockItem{}, ErrStockItemNotFound
	}
	if quantity <= 0 {
		return domain.StockItem{}, ErrInvalidQuantity
	}

	item, err := s.repo.RegisterSale(ctx, stockItemID, quantity)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("s.repo.RegisterSale -> %w", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(domain.SaleEvent{
			StockItemID:  item.ID,
			SessionID:    item.SessionID,
			GameName:     item.Name,
			QuantitySold: quantity,
			Remaining:    item.Remaining(),
			Amount:       item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
			OccurredAt:   time.Now(),
		})
	}

	return item, nil
}
