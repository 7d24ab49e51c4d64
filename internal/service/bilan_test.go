package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardland/boardland-api/internal/domain"
)

type stubBilanStockRepo struct {
	items []domain.StockItem
}

func (r *stubBilanStockRepo) FindForBilan(_ context.Context, sellerEmail string, sessionID uint) ([]domain.StockItem, error) {
	var result []domain.StockItem
	for _, item := range r.items {
		if sellerEmail != "" && item.SellerEmail != sellerEmail {
			continue
		}
		if sessionID != 0 && item.SessionID != sessionID {
			continue
		}
		result = append(result, item)
	}

	return result, nil
}

func TestBilanService_Generate(t *testing.T) {
	stockRepo := &stubBilanStockRepo{
		items: []domain.StockItem{
			{
				SessionID:         1,
				SellerEmail:       "alice@example.com",
				UnitPrice:         decimal.NewFromInt(10),
				QuantityDeposited: 10,
				QuantitySold:      7,
			},
		},
	}
	sessionRepo := &stubSessionRepo{
		sessions: map[uint]domain.Session{
			1: {
				ID:        1,
				Name:      "Spring Edition",
				StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	svc := NewBilanService(stockRepo, sessionRepo)

	bilan, err := svc.Generate(context.Background(), domain.BilanOptions{})

	require.NoError(t, err)
	require.Len(t, bilan.Points, 1)
	assert.True(t, bilan.Points[0].Revenue.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, domain.QuantitySplit{Sold: 7, Unsold: 3}, bilan.Split)
	assert.Equal(t, "70.00", bilan.SellThroughPct)
}

func TestBilanService_Generate_NoData(t *testing.T) {
	svc := NewBilanService(&stubBilanStockRepo{}, &stubSessionRepo{sessions: map[uint]domain.Session{}})

	bilan, err := svc.Generate(context.Background(), domain.BilanOptions{SessionID: 42})

	require.NoError(t, err)
	assert.True(t, bilan.NoData)
}
