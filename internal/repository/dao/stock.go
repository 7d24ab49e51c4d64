package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrStockItemNotFound   = errors.New("stock item not found")
	ErrStockItemNotForSale = errors.New("stock item is not for sale")
	ErrInsufficientStock   = errors.New("not enough remaining stock")
	ErrZeroRemaining       = errors.New("stock item has no remaining quantity")
	ErrNotItemOwner        = errors.New("stock item belongs to another seller")
	ErrNoUnpaidSales       = errors.New("no unpaid sales for this seller")
)

type StockItem struct {
	ID uint `gorm:"primaryKey"`

	SessionID uint    `gorm:"index;not null"`
	Session   Session `gorm:"foreignKey:SessionID"`

	SellerEmail string `gorm:"index;not null"`
	Name        string `gorm:"not null"`

	UnitPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	QuantityDeposited int             `gorm:"not null"`
	QuantitySold      int             `gorm:"not null;default:0"`

	Publisher   string
	Description string
	ImagePath   string

	IsForSale      bool            `gorm:"not null;default:false"`
	DepositFee     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DepositFeePaid bool            `gorm:"not null;default:false"`
	SellerPaid     bool            `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type StockDAO struct {
	db *gorm.DB
}

func NewStockDAO(db *gorm.DB) *StockDAO {
	return &StockDAO{
		db: db,
	}
}

func (d *StockDAO) Insert(ctx context.Context, item StockItem) (StockItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return StockItem{}, result.Error
	}

	return item, nil
}

func (d *StockDAO) FindByID(ctx context.Context, id uint) (StockItem, error) {
	var item StockItem

	result := d.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StockItem{}, ErrStockItemNotFound
		}

		return StockItem{}, result.Error
	}

	return item, nil
}

func (d *StockDAO) FindAll(ctx context.Context, forSaleOnly bool) ([]StockItem, error) {
	var items []StockItem

	query := d.db.WithContext(ctx).Order("id ASC")
	if forSaleOnly {
		query = query.Where("is_for_sale = ?", true)
	}

	result := query.Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// FindWithdrawable returns the seller's items that still have deposited but
// unsold quantity.
func (d *StockDAO) FindWithdrawable(ctx context.Context, sellerEmail string) ([]StockItem, error) {
	var items []StockItem

	result := d.db.WithContext(ctx).
		Where("seller_email = ? AND quantity_deposited > quantity_sold", sellerEmail).
		Order("id ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// ToggleForSale flips the for-sale flag under a row lock, refusing items
// with nothing left to sell.
func (d *StockDAO) ToggleForSale(ctx context.Context, id uint) (StockItem, error) {
	var item StockItem

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockItemNotFound
			}

			return err
		}

		if !item.IsForSale && item.QuantityDeposited-item.QuantitySold <= 0 {
			return ErrZeroRemaining
		}

		item.IsForSale = !item.IsForSale

		return tx.Save(&item).Error
	})
	if err != nil {
		return StockItem{}, err
	}

	return item, nil
}

// Withdraw removes count units of the seller's deposited-but-unsold quantity
// in one transaction. A count covering the whole remainder deletes the row
// when nothing was ever sold, otherwise the row shrinks to its sold quantity
// so the sales history survives for the payout flow.
func (d *StockDAO) Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (StockItem, bool, error) {
	var (
		item    StockItem
		removed bool
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockItemNotFound
			}

			return err
		}

		if item.SellerEmail != sellerEmail {
			return ErrNotItemOwner
		}

		remaining := item.QuantityDeposited - item.QuantitySold
		if remaining <= 0 {
			return ErrZeroRemaining
		}

		if count >= remaining {
			if item.QuantitySold == 0 {
				removed = true

				return tx.Delete(&item).Error
			}

			item.QuantityDeposited = item.QuantitySold
			item.IsForSale = false

			return tx.Save(&item).Error
		}

		item.QuantityDeposited -= count

		return tx.Save(&item).Error
	})
	if err != nil {
		return StockItem{}, false, err
	}

	return item, removed, nil
}

// RegisterSale increments quantitySold under a row lock so two concurrent
// purchases cannot both read the same remaining quantity.
func (d *StockDAO) RegisterSale(ctx context.Context, id uint, quantity int) (StockItem, error) {
	var item StockItem

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockItemNotFound
			}

			return err
		}

		if !item.IsForSale {
			return ErrStockItemNotForSale
		}
		if item.QuantityDeposited-item.QuantitySold < quantity {
			return ErrInsufficientStock
		}

		item.QuantitySold += quantity

		return tx.Save(&item).Error
	})
	if err != nil {
		return StockItem{}, err
	}

	return item, nil
}

// FindSalesBySeller returns the seller's rows with at least one unit sold.
func (d *StockDAO) FindSalesBySeller(ctx context.Context, sellerEmail string) ([]StockItem, error) {
	var items []StockItem

	result := d.db.WithContext(ctx).
		Where("seller_email = ? AND quantity_sold > 0", sellerEmail).
		Order("id ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// PaySeller marks every unpaid sold row of the seller paid in one transaction
// and returns the rows as they were before the update.
func (d *StockDAO) PaySeller(ctx context.Context, sellerEmail string) ([]StockItem, error) {
	var unpaid []StockItem

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("seller_email = ? AND quantity_sold > 0 AND seller_paid = ?", sellerEmail, false).
			Order("id ASC").
			Find(&unpaid)
		if result.Error != nil {
			return result.Error
		}
		if len(unpaid) == 0 {
			return ErrNoUnpaidSales
		}

		ids := make([]uint, len(unpaid))
		for i, item := range unpaid {
			ids[i] = item.ID
		}

		return tx.Model(&StockItem{}).
			Where("id IN ?", ids).
			Update("seller_paid", true).Error
	})
	if err != nil {
		return nil, err
	}

	return unpaid, nil
}

// SellersWithSales lists the distinct seller emails that sold at least one unit.
func (d *StockDAO) SellersWithSales(ctx context.Context) ([]string, error) {
	var emails []string

	result := d.db.WithContext(ctx).
		Model(&StockItem{}).
		Where("quantity_sold > 0").
		Distinct().
		Order("seller_email ASC").
		Pluck("seller_email", &emails)
	if result.Error != nil {
		return nil, result.Error
	}

	return emails, nil
}

// FindForBilan returns items scoped to a seller and/or a session; zero
// values widen the scope.
func (d *StockDAO) FindForBilan(ctx context.Context, sellerEmail string, sessionID uint) ([]StockItem, error) {
	var items []StockItem

	query := d.db.WithContext(ctx)
	if sellerEmail != "" {
		query = query.Where("seller_email = ?", sellerEmail)
	}
	if sessionID != 0 {
		query = query.Where("session_id = ?", sessionID)
	}

	result := query.Order("id ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
