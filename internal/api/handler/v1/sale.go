package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boardland/boardland-api/internal/api/handler/v1/request"
	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type SaleService interface {
	RegisterPurchase(ctx context.Context, stockItemID uint, quantity int) (domain.StockItem, error)
}

type SaleHandler struct {
	svc SaleService
}

func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{
		svc: svc,
	}
}

// HandleRegisterPurchase godoc
// @Summary      Register a purchase at the counter
// @Description  Increments the sold quantity of a stock item. Sales never exceed the remaining copies.
// @Tags         sales
// @Produce      json
// @Param        request   body      request.PurchaseRequest true "request body"
// @Success      200      {object}   response.CatalogueItem
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /purchases [post]
// @Security     BearerAuth
func (h *SaleHandler) HandleRegisterPurchase(ctx *gin.Context) {
	var req request.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.RegisterPurchase(ctx.Request.Context(), req.StockItemID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrStockItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stock item", "ID", req.StockItemID))
			return
		}
		if errors.Is(err, service.ErrStockItemNotForSale) || errors.Is(err, service.ErrInsufficientStock) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterPurchase -> h.svc.RegisterPurchase -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CatalogueItem{
		StockItem: item,
		Remaining: item.Remaining(),
	})
}
