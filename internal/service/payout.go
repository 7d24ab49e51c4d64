package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository"
)

var ErrNoUnpaidSales = repository.ErrNoUnpaidSales

type PayoutStockRepository interface {
	FindSalesBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItem, error)
	PaySeller(ctx context.Context, sellerEmail string) ([]domain.StockItem, error)
	SellersWithSales(ctx context.Context) ([]string, error)
}

type PayoutService struct {
	repo PayoutStockRepository
}

func NewPayoutService(repo PayoutStockRepository) *PayoutService {
	return &PayoutService{
		repo: repo,
	}
}

// SellerSales returns the seller's sales history and the total still owed.
// The total is computed here, over unpaid rows only; no row carries it.
func (s *PayoutService) SellerSales(ctx context.Context, sellerEmail string) ([]domain.SaleRow, decimal.Decimal, error) {
	items, err := s.repo.FindSalesBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("s.repo.FindSalesBySeller -> %w", err)
	}

	rows := salesToRows(items)

	return rows, domain.TotalDue(rows), nil
}

// PaySeller marks every unpaid sold row paid in one transaction and returns
// the amount that was just paid out.
func (s *PayoutService) PaySeller(ctx context.Context, sellerEmail string) (decimal.Decimal, error) {
	paid, err := s.repo.PaySeller(ctx, sellerEmail)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.PaySeller -> %w", err)
	}

	return domain.TotalDue(salesToRows(paid)), nil
}

func (s *PayoutService) SellersWithSales(ctx context.Context) ([]string, error) {
	sellers, err := s.repo.SellersWithSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SellersWithSales -> %w", err)
	}

	return sellers, nil
}

func salesToRows(items []domain.StockItem) []domain.SaleRow {
	rows := make([]domain.SaleRow, len(items))
	for i, item := range items {
		rows[i] = domain.SaleRow{
			StockItemID:  item.ID,
			GameName:     item.Name,
			QuantitySold: item.QuantitySold,
			UnitPrice:    item.UnitPrice,
			Amount:       item.SaleAmount(),
			SellerPaid:   item.SellerPaid,
		}
	}

	return rows
}
