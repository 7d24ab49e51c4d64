package response

import (
	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// CatalogueItem decorates a stock item with its derived remaining quantity.
type CatalogueItem struct {
	domain.StockItem
	Remaining int `json:"remaining"`
}

func NewCatalogueItems(items []domain.StockItem) []CatalogueItem {
	result := make([]CatalogueItem, len(items))
	for i, item := range items {
		result[i] = CatalogueItem{
			StockItem: item,
			Remaining: item.Remaining(),
		}
	}

	return result
}

type DepositResponse struct {
	Item       domain.StockItem `json:"item"`
	DepositFee decimal.Decimal  `json:"deposit_fee"`
}

type FeeQuoteResponse struct {
	SessionID  uint            `json:"session_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	DepositFee decimal.Decimal `json:"deposit_fee"`
}

type WithdrawalResponse struct {
	Removed   bool             `json:"removed"`
	Item      domain.StockItem `json:"item"`
	Remaining int              `json:"remaining"`
}

type SellerSalesResponse struct {
	SellerEmail string           `json:"seller_email"`
	Sales       []domain.SaleRow `json:"sales"`
	TotalDue    decimal.Decimal  `json:"total_due"`
}

type PayoutResponse struct {
	SellerEmail string          `json:"seller_email"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
}
