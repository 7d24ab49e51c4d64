package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

// DepositRequest is bound from the multipart deposit form; the optional game
// image travels as a separate file part.
type DepositRequest struct {
	SessionID       uint   `form:"session_id"`
	SellerEmail     string `form:"seller_email"`
	GameName        string `form:"game_name"`
	UnitPrice       string `form:"unit_price"`
	Quantity        int    `form:"quantity"`
	IsForSale       bool   `form:"is_for_sale"`
	FeePaid         bool   `form:"fee_paid"`
	Publisher       string `form:"publisher"`
	Description     string `form:"description"`
	PaymentMethodID string `form:"payment_method_id"`
}

func (req *DepositRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.SessionID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.SellerEmail, validation.Required, is.Email),
		validation.Field(&req.GameName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Publisher, validation.Length(0, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	); err != nil {
		return err
	}

	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		return fmt.Errorf("invalid unit price: %w", err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("unit price must be positive")
	}

	return nil
}

// ParsedUnitPrice must be called after Validate.
func (req *DepositRequest) ParsedUnitPrice() decimal.Decimal {
	price, _ := decimal.NewFromString(req.UnitPrice)

	return price
}

type WithdrawRequest struct {
	StockItemID uint `json:"stock_item_id"`
	Count       int  `json:"count"`
}

func (req *WithdrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StockItemID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Count, validation.Required, validation.Min(1)),
	)
}

type PurchaseRequest struct {
	StockItemID uint `json:"stock_item_id"`
	Quantity    int  `json:"quantity"`
}

func (req *PurchaseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StockItemID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
