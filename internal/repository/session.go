package repository

import (
	"context"
	"fmt"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindAll(ctx context.Context) ([]dao.Session, error)
	FindByID(ctx context.Context, id uint) (dao.Session, error)
	BulkUpdate(ctx context.Context, sessions []dao.Session) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(session))
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]domain.Session, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sessions := make([]domain.Session, len(found))
	for i, s := range found {
		sessions[i] = r.daoToDomain(s)
	}

	return sessions, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) BulkUpdate(ctx context.Context, sessions []domain.Session) error {
	daoSessions := make([]dao.Session, len(sessions))
	for i, s := range sessions {
		daoSessions[i] = r.domainToDao(s)
	}

	if err := r.dao.BulkUpdate(ctx, daoSessions); err != nil {
		return fmt.Errorf("r.dao.BulkUpdate -> %w", err)
	}

	return nil
}

func (r *SessionRepository) domainToDao(s domain.Session) dao.Session {
	return dao.Session{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		FixedFee:    s.FixedFee,
		PercentFee:  s.PercentFee,
		TotalCharge: s.TotalCharge,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		FixedFee:    s.FixedFee,
		PercentFee:  s.PercentFee,
		TotalCharge: s.TotalCharge,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
