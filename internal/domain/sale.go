package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRow is one line of a seller's sales history.
type SaleRow struct {
	StockItemID  uint            `json:"stock_item_id"`
	GameName     string          `json:"game_name"`
	QuantitySold int             `json:"quantity_sold"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
	SellerPaid   bool            `json:"seller_paid"`
}

// TotalDue sums unitPrice * quantitySold over the rows not yet paid out.
// This is the single authoritative definition of what a seller is owed.
func TotalDue(rows []SaleRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row.SellerPaid {
			continue
		}
		total = total.Add(row.Amount)
	}

	return total.Round(2)
}

// SaleEvent is broadcast on the live feed whenever a purchase is registered.
type SaleEvent struct {
	StockItemID  uint            `json:"stock_item_id"`
	SessionID    uint            `json:"session_id"`
	GameName     string          `json:"game_name"`
	QuantitySold int             `json:"quantity_sold"`
	Remaining    int             `json:"remaining"`
	Amount       decimal.Decimal `json:"amount"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
