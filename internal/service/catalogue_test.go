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

// stubCatalogueStockRepo mirrors the row-locked withdrawal contract in memory:
// withdrawing everything deletes never-sold rows and shrinks sold ones down to
// their sold quantity.
type stubCatalogueStockRepo struct {
	items map[uint]*domain.StockItem
}

func (r *stubCatalogueStockRepo) FindAll(_ context.Context, forSaleOnly bool) ([]domain.StockItem, error) {
	var result []domain.StockItem
	for _, item := range r.items {
		if forSaleOnly && !item.IsForSale {
			continue
		}
		result = append(result, *item)
	}

	return result, nil
}

func (r *stubCatalogueStockRepo) FindWithdrawable(_ context.Context, sellerEmail string) ([]domain.StockItem, error) {
	var result []domain.StockItem
	for _, item := range r.items {
		if item.SellerEmail == sellerEmail && item.Remaining() > 0 {
			result = append(result, *item)
		}
	}

	return result, nil
}

func (r *stubCatalogueStockRepo) ToggleForSale(_ context.Context, id uint) (domain.StockItem, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.StockItem{}, repository.ErrStockItemNotFound
	}
	if !item.IsForSale && item.Remaining() == 0 {
		return domain.StockItem{}, repository.ErrZeroRemaining
	}

	item.IsForSale = !item.IsForSale

	return *item, nil
}

func (r *stubCatalogueStockRepo) Withdraw(_ context.Context, id uint, sellerEmail string, count int) (domain.StockItem, bool, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.StockItem{}, false, repository.ErrStockItemNotFound
	}
	if item.SellerEmail != sellerEmail {
		return domain.StockItem{}, false, repository.ErrNotItemOwner
	}

	if count >= item.Remaining() {
		if item.QuantitySold == 0 {
			removed := *item
			delete(r.items, id)

			return removed, true, nil
		}

		item.QuantityDeposited = item.QuantitySold
		item.IsForSale = false

		return *item, false, nil
	}

	item.QuantityDeposited -= count

	return *item, false, nil
}

func newCatalogueFixture() (*CatalogueService, *stubCatalogueStockRepo) {
	repo := &stubCatalogueStockRepo{
		items: map[uint]*domain.StockItem{
			1: {
				ID:                1,
				SellerEmail:       "alice@example.com",
				Name:              "Azul",
				UnitPrice:         decimal.NewFromInt(20),
				QuantityDeposited: 5,
				QuantitySold:      2,
				IsForSale:         true,
			},
			2: {
				ID:                2,
				SellerEmail:       "alice@example.com",
				Name:              "Root",
				UnitPrice:         decimal.NewFromInt(60),
				QuantityDeposited: 3,
				QuantitySold:      0,
				IsForSale:         false,
			},
			3: {
				ID:                3,
				SellerEmail:       "bob@example.com",
				Name:              "Carcassonne",
				UnitPrice:         decimal.NewFromInt(15),
				QuantityDeposited: 2,
				QuantitySold:      2,
				IsForSale:         false,
			},
		},
	}

	return NewCatalogueService(repo), repo
}

func TestCatalogueService_List(t *testing.T) {
	svc, _ := newCatalogueFixture()

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forSale, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, forSale, 1)
	assert.Equal(t, "Azul", forSale[0].Name)
}

func TestCatalogueService_ListWithdrawable(t *testing.T) {
	svc, _ := newCatalogueFixture()

	items, err := svc.ListWithdrawable(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Len(t, items, 2, "sold-out rows are not withdrawable")
}

func TestCatalogueService_ToggleForSale(t *testing.T) {
	svc, repo := newCatalogueFixture()

	item, err := svc.ToggleForSale(context.Background(), 2)

	require.NoError(t, err)
	assert.True(t, item.IsForSale)
	assert.True(t, repo.items[2].IsForSale)
}

func TestCatalogueService_ToggleForSale_ZeroRemaining(t *testing.T) {
	svc, _ := newCatalogueFixture()

	_, err := svc.ToggleForSale(context.Background(), 3)

	assert.ErrorIs(t, err, ErrZeroRemaining)
}

func TestCatalogueService_Withdraw_Partial(t *testing.T) {
	svc, repo := newCatalogueFixture()

	item, removed, err := svc.Withdraw(context.Background(), 1, "alice@example.com", 2)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, item.QuantityDeposited)
	assert.Equal(t, 1, item.Remaining())
	assert.Equal(t, 3, repo.items[1].QuantityDeposited)
}

func TestCatalogueService_Withdraw_AllNeverSold(t *testing.T) {
	svc, repo := newCatalogueFixture()

	_, removed, err := svc.Withdraw(context.Background(), 2, "alice@example.com", 3)

	require.NoError(t, err)
	assert.True(t, removed)
	assert.NotContains(t, repo.items, uint(2))
}

func TestCatalogueService_Withdraw_AllWithSales(t *testing.T) {
	svc, repo := newCatalogueFixture()

	item, removed, err := svc.Withdraw(context.Background(), 1, "alice@example.com", 5)

	require.NoError(t, err)
	assert.False(t, removed, "sold rows stay on record for the payout history")
	assert.Equal(t, 2, item.QuantityDeposited)
	assert.Equal(t, 0, item.Remaining())
	assert.False(t, item.IsForSale)
	assert.Contains(t, repo.items, uint(1))
}

func TestCatalogueService_Withdraw_Errors(t *testing.T) {
	tests := []struct {
		name        string
		itemID      uint
		sellerEmail string
		count       int
		wantErr     error
	}{
		{
			name:        "zero count",
			itemID:      1,
			sellerEmail: "alice@example.com",
			count:       0,
			wantErr:     ErrInvalidQuantity,
		},
		{
			name:        "unknown item",
			itemID:      99,
			sellerEmail: "alice@example.com",
			count:       1,
			wantErr:     ErrStockItemNotFound,
		},
		{
			name:        "not the owner",
			itemID:      1,
			sellerEmail: "bob@example.com",
			count:       1,
			wantErr:     ErrNotItemOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCatalogueFixture()

			_, _, err := svc.Withdraw(context.Background(), tt.itemID, tt.sellerEmail, tt.count)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
