package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type stubSaleService struct {
	item domain.StockItem
	err  error
}

func (s *stubSaleService) RegisterPurchase(_ context.Context, _ uint, _ int) (domain.StockItem, error) {
	if s.err != nil {
		return domain.StockItem{}, s.err
	}

	return s.item, nil
}

func performPurchase(svc SaleService, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/purchases", NewSaleHandler(svc).HandleRegisterPurchase)

	req := httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestSaleHandler_HandleRegisterPurchase(t *testing.T) {
	svc := &stubSaleService{
		item: domain.StockItem{
			ID:                1,
			Name:              "Azul",
			UnitPrice:         decimal.NewFromInt(20),
			QuantityDeposited: 5,
			QuantitySold:      3,
			IsForSale:         true,
		},
	}

	recorder := performPurchase(svc, `{"stock_item_id":1,"quantity":1}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body response.CatalogueItem
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Azul", body.Name)
	assert.Equal(t, 2, body.Remaining)
}

func TestSaleHandler_HandleRegisterPurchase_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			body:       `{"stock_item_id":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   response.CodeValidationError,
		},
		{
			name:       "missing quantity",
			body:       `{"stock_item_id":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   response.CodeValidationError,
		},
		{
			name:       "unknown item",
			body:       `{"stock_item_id":99,"quantity":1}`,
			svcErr:     service.ErrStockItemNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   response.CodeNotFound,
		},
		{
			name:       "not for sale",
			body:       `{"stock_item_id":1,"quantity":1}`,
			svcErr:     service.ErrStockItemNotForSale,
			wantStatus: http.StatusConflict,
			wantCode:   response.CodeConflict,
		},
		{
			name:       "insufficient stock",
			body:       `{"stock_item_id":1,"quantity":10}`,
			svcErr:     service.ErrInsufficientStock,
			wantStatus: http.StatusConflict,
			wantCode:   response.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := performPurchase(&stubSaleService{err: tt.svcErr}, tt.body)

			require.Equal(t, tt.wantStatus, recorder.Code)

			var body response.Err
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
