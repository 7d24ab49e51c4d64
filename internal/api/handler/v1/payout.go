package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type PayoutService interface {
	SellerSales(ctx context.Context, sellerEmail string) ([]domain.SaleRow, decimal.Decimal, error)
	PaySeller(ctx context.Context, sellerEmail string) (decimal.Decimal, error)
	SellersWithSales(ctx context.Context) ([]string, error)
}

type PayoutHandler struct {
	svc PayoutService
}

func NewPayoutHandler(svc PayoutService) *PayoutHandler {
	return &PayoutHandler{
		svc: svc,
	}
}

// HandleListSellers godoc
// @Summary      List sellers with registered sales
// @Tags         payouts
// @Produce      json
// @Success      200      {object}   []string
// @Failure      500      {object}   response.Err
// @Router       /sellers [get]
// @Security     BearerAuth
func (h *PayoutHandler) HandleListSellers(ctx *gin.Context) {
	sellers, err := h.svc.SellersWithSales(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSellers -> h.svc.SellersWithSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sellers)
}

// HandleSellerSales godoc
// @Summary      List a seller's sales and amount due
// @Description  The amount due sums the unpaid sale rows only; settled payouts are excluded.
// @Tags         payouts
// @Produce      json
// @Param        email   path      string  true  "Seller email"
// @Success      200      {object}   response.SellerSalesResponse
// @Failure      500      {object}   response.Err
// @Router       /sellers/{email}/sales [get]
// @Security     BearerAuth
func (h *PayoutHandler) HandleSellerSales(ctx *gin.Context) {
	sellerEmail := ctx.Param("email")

	sales, totalDue, err := h.svc.SellerSales(ctx.Request.Context(), sellerEmail)
	if err != nil {
		err = fmt.Errorf("v1.HandleSellerSales -> h.svc.SellerSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SellerSalesResponse{
		SellerEmail: sellerEmail,
		Sales:       sales,
		TotalDue:    totalDue,
	})
}

// HandlePaySeller godoc
// @Summary      Pay out a seller's unpaid sales
// @Description  Marks every unpaid sale row as settled in one transaction and reports the amount handed over.
// @Tags         payouts
// @Produce      json
// @Param        email   path      string  true  "Seller email"
// @Success      200      {object}   response.PayoutResponse
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sellers/{email}/payout [post]
// @Security     BearerAuth
func (h *PayoutHandler) HandlePaySeller(ctx *gin.Context) {
	sellerEmail := ctx.Param("email")

	amount, err := h.svc.PaySeller(ctx.Request.Context(), sellerEmail)
	if err != nil {
		if errors.Is(err, service.ErrNoUnpaidSales) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandlePaySeller -> h.svc.PaySeller -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.PayoutResponse{
		SellerEmail: sellerEmail,
		AmountPaid:  amount,
	})
}
