package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is one seller's deposited game inside a session.
type StockItem struct {
	ID                uint            `json:"id"`
	SessionID         uint            `json:"session_id"`
	SellerEmail       string          `json:"seller_email"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	QuantityDeposited int             `json:"quantity_deposited"`
	QuantitySold      int             `json:"quantity_sold"`
	Publisher         string          `json:"publisher,omitempty"`
	Description       string          `json:"description,omitempty"`
	ImagePath         string          `json:"image_path,omitempty"`
	IsForSale         bool            `json:"is_for_sale"`
	DepositFee        decimal.Decimal `json:"deposit_fee"`
	DepositFeePaid    bool            `json:"deposit_fee_paid"`
	SellerPaid        bool            `json:"seller_paid"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Remaining is the deposited-but-unsold quantity, the amount still
// available for sale or withdrawal.
func (i StockItem) Remaining() int {
	return i.QuantityDeposited - i.QuantitySold
}

// SaleAmount is unitPrice * quantitySold, what the seller is owed for this
// row once sold.
func (i StockItem) SaleAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.QuantitySold))).Round(2)
}
