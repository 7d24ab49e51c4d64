package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID uint `gorm:"primaryKey"`

	Name      string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	FixedFee    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PercentFee  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TotalCharge decimal.Decimal `gorm:"type:decimal(10,2)"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindAll(ctx context.Context) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Order("id ASC").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

// BulkUpdate saves the given sessions in one transaction. Either every row is
// written or none is; an error names the session that caused the rollback.
func (d *SessionDAO) BulkUpdate(ctx context.Context, sessions []Session) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, session := range sessions {
			var existing Session
			if err := tx.First(&existing, session.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("session %v: %w", session.ID, ErrSessionNotFound)
				}

				return fmt.Errorf("session %v: %w", session.ID, err)
			}

			session.CreatedAt = existing.CreatedAt
			if err := tx.Save(&session).Error; err != nil {
				return fmt.Errorf("session %v: %w", session.ID, err)
			}
		}

		return nil
	})
}
