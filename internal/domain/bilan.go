package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BilanOptions scopes a report: zero values mean "everything".
type BilanOptions struct {
	SellerEmail  string
	SessionID    uint
	FixedCharges decimal.Decimal
}

// BilanPoint is one step of the profit time series, keyed by session date.
type BilanPoint struct {
	SessionID        uint            `json:"session_id"`
	SessionName      string          `json:"session_name"`
	Date             time.Time       `json:"date"`
	Revenue          decimal.Decimal `json:"revenue"`
	CumulativeProfit decimal.Decimal `json:"cumulative_profit"`
}

// QuantitySplit feeds the sold-vs-unsold pie chart.
type QuantitySplit struct {
	Sold   int `json:"sold"`
	Unsold int `json:"unsold"`
}

type Bilan struct {
	Points         []BilanPoint  `json:"points"`
	Split          QuantitySplit `json:"split"`
	SellThroughPct string        `json:"sell_through_pct"`
	NoData         bool          `json:"no_data"`
}

// ComputeBilan aggregates stock items into the report: a cumulative net
// profit series ordered by session start date, a sold/unsold split and the
// sell-through ratio. When nothing was deposited in scope it reports an
// explicit no-data state instead of a divide-by-zero artifact.
func ComputeBilan(items []StockItem, sessions []Session, opts BilanOptions) Bilan {
	sessionsByID := make(map[uint]Session, len(sessions))
	for _, s := range sessions {
		sessionsByID[s.ID] = s
	}

	var (
		totalDeposited int
		totalSold      int
	)
	revenueBySession := make(map[uint]decimal.Decimal)

	for _, item := range items {
		if opts.SellerEmail != "" && item.SellerEmail != opts.SellerEmail {
			continue
		}
		if opts.SessionID != 0 && item.SessionID != opts.SessionID {
			continue
		}

		totalDeposited += item.QuantityDeposited
		totalSold += item.QuantitySold
		revenueBySession[item.SessionID] = revenueBySession[item.SessionID].Add(item.SaleAmount())
	}

	if totalDeposited == 0 {
		return Bilan{NoData: true}
	}

	scoped := make([]Session, 0, len(revenueBySession))
	for id := range revenueBySession {
		if s, ok := sessionsByID[id]; ok {
			scoped = append(scoped, s)
		}
	}
	sort.Slice(scoped, func(i, j int) bool {
		if scoped[i].StartDate.Equal(scoped[j].StartDate) {
			return scoped[i].ID < scoped[j].ID
		}
		return scoped[i].StartDate.Before(scoped[j].StartDate)
	})

	points := make([]BilanPoint, 0, len(scoped))
	cumulative := opts.FixedCharges.Neg()
	for _, s := range scoped {
		revenue := revenueBySession[s.ID]
		cumulative = cumulative.Add(revenue)
		points = append(points, BilanPoint{
			SessionID:        s.ID,
			SessionName:      s.Name,
			Date:             s.StartDate,
			Revenue:          revenue,
			CumulativeProfit: cumulative.Round(2),
		})
	}

	ratio := decimal.NewFromInt(int64(totalSold)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(totalDeposited)))

	return Bilan{
		Points: points,
		Split: QuantitySplit{
			Sold:   totalSold,
			Unsold: totalDeposited - totalSold,
		},
		SellThroughPct: ratio.StringFixed(2),
	}
}
