package service

import (
	"context"
	"fmt"

	"github.com/boardland/boardland-api/internal/domain"
)

type BilanStockRepository interface {
	FindForBilan(ctx context.Context, sellerEmail string, sessionID uint) ([]domain.StockItem, error)
}

type BilanService struct {
	stockRepo   BilanStockRepository
	sessionRepo SessionRepository
}

func NewBilanService(stockRepo BilanStockRepository, sessionRepo SessionRepository) *BilanService {
	return &BilanService{
		stockRepo:   stockRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *BilanService) Generate(ctx context.Context, opts domain.BilanOptions) (domain.Bilan, error) {
	items, err := s.stockRepo.FindForBilan(ctx, opts.SellerEmail, opts.SessionID)
	if err != nil {
		return domain.Bilan{}, fmt.Errorf("s.stockRepo.FindForBilan -> %w", err)
	}

	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		return domain.Bilan{}, fmt.Errorf("s.sessionRepo.FindAll -> %w", err)
	}

	return domain.ComputeBilan(items, sessions, opts), nil
}
