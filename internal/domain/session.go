package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrSessionDatesInverted = errors.New("session start date is after its end date")
	ErrNegativeFee          = errors.New("session fees must not be negative")
)

// Session is a festival edition sellers deposit games into. Its fee schedule
// drives the deposit fee charged on every submission.
type Session struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	FixedFee    decimal.Decimal `json:"fixed_fee"`
	PercentFee  decimal.Decimal `json:"percent_fee"`
	TotalCharge decimal.Decimal `json:"total_charge"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DepositFee computes fixedFee + unitPrice * percentFee / 100 for one game,
// rounded half away from zero to the cent.
func (s Session) DepositFee(unitPrice decimal.Decimal) decimal.Decimal {
	percent := s.PercentFee.Div(decimal.NewFromInt(100))

	return s.FixedFee.Add(unitPrice.Mul(percent)).Round(2)
}

// CheckInvariants enforces startDate <= endDate and fees >= 0.
func (s Session) CheckInvariants() error {
	if s.StartDate.After(s.EndDate) {
		return ErrSessionDatesInverted
	}
	if s.FixedFee.IsNegative() || s.PercentFee.IsNegative() {
		return ErrNegativeFee
	}

	return nil
}
