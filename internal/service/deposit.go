package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/domain"
)

var (
	ErrInvalidSellerEmail = errors.New("seller email is malformed")
	ErrEmptyGameName      = errors.New("game name must not be empty")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice   = errors.New("unit price must be positive")
	ErrDepositFeeUnpaid   = errors.New("deposit fee must be paid on submission")
)

var sellerEmailExp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type DepositStockRepository interface {
	Create(ctx context.Context, item domain.StockItem) (domain.StockItem, error)
}

// FeeCharger collects the deposit fee through a payment provider. A nil
// payment method id skips collection (fee settled at the counter).
type FeeCharger interface {
	Charge(ctx context.Context, amount decimal.Decimal, paymentMethodID, sellerEmail string) error
}

type Deposit struct {
	SessionID       uint
	SellerEmail     string
	GameName        string
	UnitPrice       decimal.Decimal
	Quantity        int
	IsForSale       bool
	FeePaid         bool
	Publisher       string
	Description     string
	ImagePath       string
	PaymentMethodID string
}

type DepositService struct {
	stockRepo   DepositStockRepository
	sessionRepo SessionRepository
	charger     FeeCharger
}

func NewDepositService(stockRepo DepositStockRepository, sessionRepo SessionRepository, charger FeeCharger) *DepositService {
	return &DepositService{
		stockRepo:   stockRepo,
		sessionRepo: sessionRepo,
		charger:     charger,
	}
}

// Submit validates the deposit, computes the session's deposit fee and
// persists the stock item with nothing sold yet. Every client-side check is
// duplicated here; the fee-paid flag in particular is enforced server-side.
func (s *DepositService) Submit(ctx context.Context, deposit Deposit) (domain.StockItem, error) {
	if err := checkDeposit(deposit); err != nil {
		return domain.StockItem{}, err
	}

	session, err := s.sessionRepo.FindByID(ctx, deposit.SessionID)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	fee := session.DepositFee(deposit.UnitPrice)

	if s.charger != nil && deposit.PaymentMethodID != "" {
		if err = s.charger.Charge(ctx, fee, deposit.PaymentMethodID, deposit.SellerEmail); err != nil {
			return domain.StockItem{}, fmt.Errorf("s.charger.Charge -> %w", err)
		}
	}

	item := domain.StockItem{
		SessionID:         deposit.SessionID,
		SellerEmail:       deposit.SellerEmail,
		Name:              deposit.GameName,
		UnitPrice:         deposit.UnitPrice,
		QuantityDeposited: deposit.Quantity,
		QuantitySold:      0,
		Publisher:         deposit.Publisher,
		Description:       deposit.Description,
		ImagePath:         deposit.ImagePath,
		IsForSale:         deposit.IsForSale,
		DepositFee:        fee,
		DepositFeePaid:    deposit.FeePaid,
	}

	created, err := s.stockRepo.Create(ctx, item)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("s.stockRepo.Create -> %w", err)
	}

	return created, nil
}

// QuoteFee previews the deposit fee for a unit price without submitting
// anything.
func (s *DepositService) QuoteFee(ctx context.Context, sessionID uint, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if !unitPrice.IsPositive() {
		return decimal.Zero, ErrInvalidUnitPrice
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.sessionRepo.FindByID -> %w", err)
	}

	return session.DepositFee(unitPrice), nil
}

func checkDeposit(deposit Deposit) error {
	if !sellerEmailExp.MatchString(deposit.SellerEmail) {
		return ErrInvalidSellerEmail
	}
	if deposit.GameName == "" {
		return ErrEmptyGameName
	}
	if deposit.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !deposit.UnitPrice.IsPositive() {
		return ErrInvalidUnitPrice
	}
	if !deposit.FeePaid {
		return ErrDepositFeeUnpaid
	}

	return nil
}
