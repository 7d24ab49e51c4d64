package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository"
)

type stubSaleStockRepo struct {
	items map[uint]*domain.StockItem
}

func (r *stubSaleStockRepo) RegisterSale(_ context.Context, id uint, quantity int) (domain.StockItem, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.StockItem{}, repository.ErrStockItemNotFound
	}
	if !item.IsForSale {
		return domain.StockItem{}, repository.ErrStockItemNotForSale
	}
	if quantity > item.Remaining() {
		return domain.StockItem{}, repository.ErrInsufficientStock
	}

	item.QuantitySold += quantity

	return *item, nil
}

type recordingNotifier struct {
	events []domain.SaleEvent
}

func (n *recordingNotifier) Notify(event domain.SaleEvent) {
	n.events = append(n.events, event)
}

func newSaleFixture() (*SaleService, *stubSaleStockRepo, *recordingNotifier) {
	repo := &stubSaleStockRepo{
		items: map[uint]*domain.StockItem{
			1: {
				ID:                1,
				SessionID:         1,
				Name:              "Azul",
				UnitPrice:         decimal.RequireFromString("12.50"),
				QuantityDeposited: 5,
				QuantitySold:      2,
				IsForSale:         true,
			},
			2: {
				ID:                2,
				Name:              "Root",
				UnitPrice:         decimal.NewFromInt(60),
				QuantityDeposited: 1,
				IsForSale:         false,
			},
		},
	}
	notifier := &recordingNotifier{}
	svc := NewSaleService(repo, notifier)

	return svc, repo, notifier
}

func TestSaleService_RegisterPurchase(t *testing.T) {
	svc, repo, notifier := newSaleFixture()

	item, err := svc.RegisterPurchase(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 4, item.QuantitySold)
	assert.Equal(t, 1, item.Remaining())
	assert.Equal(t, 4, repo.items[1].QuantitySold)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, uint(1), event.StockItemID)
	assert.Equal(t, 2, event.QuantitySold)
	assert.Equal(t, 1, event.Remaining)
	assert.True(t, event.Amount.Equal(decimal.NewFromInt(25)), "got %v", event.Amount)
}

func TestSaleService_RegisterPurchase_Errors(t *testing.T) {
	tests := []struct {
		name     string
		itemID   uint
		quantity int
		wantErr  error
	}{
		{
			name:     "unknown item",
			itemID:   99,
			quantity: 1,
			wantErr:  ErrStockItemNotFound,
		},
		{
			name:     "zero item id",
			itemID:   0,
			quantity: 1,
			wantErr:  ErrStockItemNotFound,
		},
		{
			name:     "zero quantity",
			itemID:   1,
			quantity: 0,
			wantErr:  ErrInvalidQuantity,
		},
		{
			name:     "not for sale",
			itemID:   2,
			quantity: 1,
			wantErr:  ErrStockItemNotForSale,
		},
		{
			name:     "more than remaining",
			itemID:   1,
			quantity: 4,
			wantErr:  ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, notifier := newSaleFixture()

			_, err := svc.RegisterPurchase(context.Background(), tt.itemID, tt.quantity)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, notifier.events, "failed purchases must not hit the feed")
		})
	}
}
