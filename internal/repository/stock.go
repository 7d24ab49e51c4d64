package repository

import (
	"context"
	"fmt"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository/dao"
)

var (
	ErrStockItemNotFound   = dao.ErrStockItemNotFound
	ErrStockItemNotForSale = dao.ErrStockItemNotForSale
	ErrInsufficientStock   = dao.ErrInsufficientStock
	ErrZeroRemaining       = dao.ErrZeroRemaining
	ErrNotItemOwner        = dao.ErrNotItemOwner
	ErrNoUnpaidSales       = dao.ErrNoUnpaidSales
)

type StockDAO interface {
	Insert(ctx context.Context, item dao.StockItem) (dao.StockItem, error)
	FindByID(ctx context.Context, id uint) (dao.StockItem, error)
	FindAll(ctx context.Context, forSaleOnly bool) ([]dao.StockItem, error)
	FindWithdrawable(ctx context.Context, sellerEmail string) ([]dao.StockItem, error)
	ToggleForSale(ctx context.Context, id uint) (dao.StockItem, error)
	Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (dao.StockItem, bool, error)
	RegisterSale(ctx context.Context, id uint, quantity int) (dao.StockItem, error)
	FindSalesBySeller(ctx context.Context, sellerEmail string) ([]dao.StockItem, error)
	PaySeller(ctx context.Context, sellerEmail string) ([]dao.StockItem, error)
	SellersWithSales(ctx context.Context) ([]string, error)
	FindForBilan(ctx context.Context, sellerEmail string, sessionID uint) ([]dao.StockItem, error)
}

type StockRepository struct {
	dao StockDAO
}

func NewStockRepository(dao StockDAO) *StockRepository {
	return &StockRepository{
		dao: dao,
	}
}

func (r *StockRepository) Create(ctx context.Context, item domain.StockItem) (domain.StockItem, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(item))
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StockRepository) FindByID(ctx context.Context, id uint) (domain.StockItem, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StockRepository) FindAll(ctx context.Context, forSaleOnly bool) ([]domain.StockItem, error) {
	found, err := r.dao.FindAll(ctx, forSaleOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StockRepository) FindWithdrawable(ctx context.Context, sellerEmail string) ([]domain.StockItem, error) {
	found, err := r.dao.FindWithdrawable(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWithdrawable -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StockRepository) ToggleForSale(ctx context.Context, id uint) (domain.StockItem, error) {
	toggled, err := r.dao.ToggleForSale(ctx, id)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("r.dao.ToggleForSale -> %w", err)
	}

	return r.daoToDomain(toggled), nil
}

func (r *StockRepository) Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (domain.StockItem, bool, error) {
	item, removed, err := r.dao.Withdraw(ctx, id, sellerEmail, count)
	if err != nil {
		return domain.StockItem{}, false, fmt.Errorf("r.dao.Withdraw -> %w", err)
	}

	return r.daoToDomain(item), removed, nil
}

func (r *StockRepository) RegisterSale(ctx context.Context, id uint, quantity int) (domain.StockItem, error) {
	item, err := r.dao.RegisterSale(ctx, id, quantity)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("r.dao.RegisterSale -> %w", err)
	}

	return r.daoToDomain(item), nil
}

func (r *StockRepository) FindSalesBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItem, error) {
	found, err := r.dao.FindSalesBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSalesBySeller -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StockRepository) PaySeller(ctx context.Context, sellerEmail string) ([]domain.StockItem, error) {
	paid, err := r.dao.PaySeller(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.PaySeller -> %w", err)
	}

	return r.daosToDomain(paid), nil
}

func (r *StockRepository) SellersWithSales(ctx context.Context) ([]string, error) {
	emails, err := r.dao.SellersWithSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SellersWithSales -> %w", err)
	}

	return emails, nil
}

func (r *StockRepository) FindForBilan(ctx context.Context, sellerEmail string, sessionID uint) ([]domain.StockItem, error) {
	found, err := r.dao.FindForBilan(ctx, sellerEmail, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindForBilan -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StockRepository) domainToDao(i domain.StockItem) dao.StockItem {
	return dao.StockItem{
		ID:                i.ID,
		SessionID:         i.SessionID,
		SellerEmail:       i.SellerEmail,
		Name:              i.Name,
		UnitPrice:         i.UnitPrice,
		QuantityDeposited: i.QuantityDeposited,
		QuantitySold:      i.QuantitySold,
		Publisher:         i.Publisher,
		Description:       i.Description,
		ImagePath:         i.ImagePath,
		IsForSale:         i.IsForSale,
		DepositFee:        i.DepositFee,
		DepositFeePaid:    i.DepositFeePaid,
		SellerPaid:        i.SellerPaid,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func (r *StockRepository) daoToDomain(i dao.StockItem) domain.StockItem {
	return domain.StockItem{
		ID:                i.ID,
		SessionID:         i.SessionID,
		SellerEmail:       i.SellerEmail,
		Name:              i.Name,
		UnitPrice:         i.UnitPrice,
		QuantityDeposited: i.QuantityDeposited,
		QuantitySold:      i.QuantitySold,
		Publisher:         i.Publisher,
		Description:       i.Description,
		ImagePath:         i.ImagePath,
		IsForSale:         i.IsForSale,
		DepositFee:        i.DepositFee,
		DepositFeePaid:    i.DepositFeePaid,
		SellerPaid:        i.SellerPaid,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func (r *StockRepository) daosToDomain(items []dao.StockItem) []domain.StockItem {
	result := make([]domain.StockItem, len(items))
	for i, item := range items {
		result[i] = r.daoToDomain(item)
	}

	return result
}
