package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/repository"
)

var (
	ErrSessionNotFound      = repository.ErrSessionNotFound
	ErrSessionDatesInverted = domain.ErrSessionDatesInverted
	ErrNegativeFee          = domain.ErrNegativeFee
	ErrMissingSessionFields = errors.New("session name, address and both dates are required")
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindAll(ctx context.Context) ([]domain.Session, error)
	FindByID(ctx context.Context, id uint) (domain.Session, error)
	BulkUpdate(ctx context.Context, sessions []domain.Session) error
}

type SessionService struct {
	repo SessionRepository
}

func NewSessionService(repo SessionRepository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

func (s *SessionService) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	if err := checkSession(session); err != nil {
		return domain.Session{}, err
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sessions, nil
}

func (s *SessionService) GetByID(ctx context.Context, id uint) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

// BulkUpdate saves the modified sessions all-or-nothing. Every row is
// re-validated server-side before anything is written.
func (s *SessionService) BulkUpdate(ctx context.Context, sessions []domain.Session) error {
	for _, session := range sessions {
		if err := checkSession(session); err != nil {
			return fmt.Errorf("session %v: %w", session.ID, err)
		}
	}

	if err := s.repo.BulkUpdate(ctx, sessions); err != nil {
		return fmt.Errorf("s.repo.BulkUpdate -> %w", err)
	}

	return nil
}

func checkSession(session domain.Session) error {
	if session.Name == "" || session.Address == "" ||
		session.StartDate.IsZero() || session.EndDate.IsZero() {
		return ErrMissingSessionFields
	}

	return session.CheckInvariants()
}
