package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/domain"
)

// SessionDateFormat is the wire format for festival dates.
const SessionDateFormat = "02/01/2006"

type CreateSessionRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	StartDate   string `json:"start_date" format:"DD/MM/YYYY"`
	EndDate     string `json:"end_date" format:"DD/MM/YYYY"`
	FixedFee    string `json:"fixed_fee"`
	PercentFee  string `json:"percent_fee"`
	TotalCharge string `json:"total_charge"`
	Description string `json:"description"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required, validation.Date(SessionDateFormat)),
		validation.Field(&req.EndDate, validation.Required, validation.Date(SessionDateFormat)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

// ToDomain parses dates and fee decimals into a domain session.
func (req *CreateSessionRequest) ToDomain() (domain.Session, error) {
	startDate, err := time.Parse(SessionDateFormat, req.StartDate)
	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid start date: %w", err)
	}

	endDate, err := time.Parse(SessionDateFormat, req.EndDate)
	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid end date: %w", err)
	}

	fixedFee, err := parseAmount("fixed_fee", req.FixedFee)
	if err != nil {
		return domain.Session{}, err
	}

	percentFee, err := parseAmount("percent_fee", req.PercentFee)
	if err != nil {
		return domain.Session{}, err
	}

	totalCharge := decimal.Zero
	if req.TotalCharge != "" {
		totalCharge, err = parseAmount("total_charge", req.TotalCharge)
		if err != nil {
			return domain.Session{}, err
		}
	}

	return domain.Session{
		Name:        req.Name,
		Address:     req.Address,
		StartDate:   startDate,
		EndDate:     endDate,
		FixedFee:    fixedFee,
		PercentFee:  percentFee,
		TotalCharge: totalCharge,
		Description: req.Description,
	}, nil
}

type UpdateSessionRequest struct {
	ID uint `json:"id"`
	CreateSessionRequest
}

func (req *UpdateSessionRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required, validation.Min(uint(1))),
	); err != nil {
		return err
	}

	return req.CreateSessionRequest.Validate()
}

// UpdateSessionsRequest carries only the rows the client flagged modified.
type UpdateSessionsRequest struct {
	Sessions []UpdateSessionRequest `json:"sessions"`
}

func (req *UpdateSessionsRequest) Validate() error {
	if len(req.Sessions) == 0 {
		return fmt.Errorf("no modifications to save")
	}

	for i := range req.Sessions {
		if err := req.Sessions[i].Validate(); err != nil {
			return fmt.Errorf("session %v: %w", req.Sessions[i].ID, err)
		}
	}

	return nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %v: %w", field, err)
	}

	return amount, nil
}
