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

type stubPayoutStockRepo struct {
	items map[uint]*domain.StockItem
}

func (r *stubPayoutStockRepo) FindSalesBySeller(_ context.Context, sellerEmail string) ([]domain.StockItem, error) {
	var result []domain.StockItem
	for _, item := range r.items {
		if item.SellerEmail == sellerEmail && item.QuantitySold > 0 {
			result = append(result, *item)
		}
	}

	return result, nil
}

func (r *stubPayoutStockRepo) PaySeller(_ context.Context, sellerEmail string) ([]domain.StockItem, error) {
	var paid []domain.StockItem
	for _, item := range r.items {
		if item.SellerEmail == sellerEmail && item.QuantitySold > 0 && !item.SellerPaid {
			paid = append(paid, *item)
			item.SellerPaid = true
		}
	}
	if len(paid) == 0 {
		return nil, repository.ErrNoUnpaidSales
	}

	return paid, nil
}

func (r *stubPayoutStockRepo) SellersWithSales(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var sellers []string
	for _, item := range r.items {
		if item.QuantitySold == 0 {
			continue
		}
		if _, ok := seen[item.SellerEmail]; ok {
			continue
		}
		seen[item.SellerEmail] = struct{}{}
		sellers = append(sellers, item.SellerEmail)
	}

	return sellers, nil
}

func newPayoutFixture() (*PayoutService, *stubPayoutStockRepo) {
	repo := &stubPayoutStockRepo{
		items: map[uint]*domain.StockItem{
			1: {
				ID:           1,
				SellerEmail:  "alice@example.com",
				Name:         "Azul",
				UnitPrice:    decimal.RequireFromString("12.50"),
				QuantitySold: 3,
			},
			2: {
				ID:           2,
				SellerEmail:  "alice@example.com",
				Name:         "Carcassonne",
				UnitPrice:    decimal.NewFromInt(12),
				QuantitySold: 1,
				SellerPaid:   true,
			},
			3: {
				ID:          3,
				SellerEmail: "alice@example.com",
				Name:        "Root",
				UnitPrice:   decimal.NewFromInt(60),
			},
			4: {
				ID:           4,
				SellerEmail:  "bob@example.com",
				Name:         "Wingspan",
				UnitPrice:    decimal.NewFromInt(45),
				QuantitySold: 2,
			},
		},
	}

	return NewPayoutService(repo), repo
}

func TestPayoutService_SellerSales(t *testing.T) {
	svc, _ := newPayoutFixture()

	rows, totalDue, err := svc.SellerSales(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Len(t, rows, 2, "never-sold rows do not show in the history")

	// Only the unpaid row counts: 3 * 12.50. The settled Carcassonne row
	// appears in the history but not in the total.
	assert.True(t, totalDue.Equal(decimal.RequireFromString("37.50")), "got %v", totalDue)
}

func TestPayoutService_PaySeller(t *testing.T) {
	svc, repo := newPayoutFixture()

	amount, err := svc.PaySeller(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("37.50")), "got %v", amount)
	assert.True(t, repo.items[1].SellerPaid)

	// A second payout has nothing left to settle.
	_, err = svc.PaySeller(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNoUnpaidSales)

	// And the amount due is now zero.
	_, totalDue, err := svc.SellerSales(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, totalDue.IsZero(), "got %v", totalDue)
}

func TestPayoutService_SellersWithSales(t *testing.T) {
	svc, _ := newPayoutFixture()

	sellers, err := svc.SellersWithSales(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, sellers)
}
