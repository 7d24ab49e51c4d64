package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateSession() CreateSessionRequest {
	return CreateSessionRequest{
		Name:       "Spring Edition",
		Address:    "12 Rue des Jeux, Lyon",
		StartDate:  "01/03/2025",
		EndDate:    "03/03/2025",
		FixedFee:   "2",
		PercentFee: "10",
	}
}

func TestCreateSessionRequest_ToDomain(t *testing.T) {
	req := validCreateSession()
	require.NoError(t, req.Validate())

	session, err := req.ToDomain()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), session.StartDate)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), session.EndDate)
	assert.True(t, session.FixedFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, session.PercentFee.Equal(decimal.NewFromInt(10)))
}

func TestCreateSessionRequest_Validate_BadDate(t *testing.T) {
	req := validCreateSession()
	req.StartDate = "2025-03-01"

	assert.Error(t, req.Validate(), "dates use the DD/MM/YYYY wire format")
}

func TestCreateSessionRequest_ToDomain_BadFee(t *testing.T) {
	req := validCreateSession()
	req.FixedFee = "two euros"

	_, err := req.ToDomain()

	assert.Error(t, err)
}

func TestUpdateSessionsRequest_Validate(t *testing.T) {
	empty := UpdateSessionsRequest{}
	assert.EqualError(t, empty.Validate(), "no modifications to save")

	withRow := UpdateSessionsRequest{
		Sessions: []UpdateSessionRequest{
			{ID: 3, CreateSessionRequest: validCreateSession()},
		},
	}
	assert.NoError(t, withRow.Validate())

	missingID := UpdateSessionsRequest{
		Sessions: []UpdateSessionRequest{
			{CreateSessionRequest: validCreateSession()},
		},
	}
	assert.Error(t, missingID.Validate())
}
