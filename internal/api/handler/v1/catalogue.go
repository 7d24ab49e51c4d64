package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boardland/boardland-api/internal/api/handler/v1/request"
	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type CatalogueService interface {
	List(ctx context.Context, forSaleOnly bool) ([]domain.StockItem, error)
	ListWithdrawable(ctx context.Context, sellerEmail string) ([]domain.StockItem, error)
	ToggleForSale(ctx context.Context, id uint) (domain.StockItem, error)
	Withdraw(ctx context.Context, id uint, sellerEmail string, count int) (domain.StockItem, bool, error)
}

type CatalogueHandler struct {
	svc  CatalogueService
	uSvc UserService
}

func NewCatalogueHandler(svc CatalogueService, uSvc UserService) *CatalogueHandler {
	return &CatalogueHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListCatalogue godoc
// @Summary      List the stock catalogue
// @Tags         catalogue
// @Produce      json
// @Param        for_sale   query     bool  false  "Only items currently for sale"
// @Success      200      {object}   []response.CatalogueItem
// @Failure      500      {object}   response.Err
// @Router       /catalogue [get]
func (h *CatalogueHandler) HandleListCatalogue(ctx *gin.Context) {
	forSaleOnly, _ := strconv.ParseBool(ctx.Query("for_sale"))

	items, err := h.svc.List(ctx.Request.Context(), forSaleOnly)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCatalogue -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewCatalogueItems(items))
}

// HandleToggleForSale godoc
// @Summary      Toggle an item's for-sale state
// @Description  Enabling sale is refused when no copies remain.
// @Tags         catalogue
// @Produce      json
// @Param        itemID   path      int  true  "Stock item ID"
// @Success      200      {object}   response.CatalogueItem
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stock/{itemID}/toggle-sale [put]
// @Security     BearerAuth
func (h *CatalogueHandler) HandleToggleForSale(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	item, err := h.svc.ToggleForSale(ctx.Request.Context(), uint(itemID))
	if err != nil {
		if errors.Is(err, service.ErrStockItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stock item", "ID", itemID))
			return
		}
		if errors.Is(err, service.ErrZeroRemaining) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleToggleForSale -> h.svc.ToggleForSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CatalogueItem{
		StockItem: item,
		Remaining: item.Remaining(),
	})
}

// HandleListWithdrawable godoc
// @Summary      List the acting seller's withdrawable items
// @Tags         withdrawals
// @Produce      json
// @Param        seller_email   query     string  false  "Seller email (managers only)"
// @Success      200      {object}   []response.CatalogueItem
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /withdrawals [get]
// @Security     BearerAuth
func (h *CatalogueHandler) HandleListWithdrawable(ctx *gin.Context) {
	sellerEmail, respErr := h.resolveSellerEmail(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.ListWithdrawable(ctx.Request.Context(), sellerEmail)
	if err != nil {
		err = fmt.Errorf("v1.HandleListWithdrawable -> h.svc.ListWithdrawable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewCatalogueItems(items))
}

// HandleWithdraw godoc
// @Summary      Withdraw copies of a deposited game
// @Description  Withdrawing everything removes the item unless sales already happened, in which case the sold copies stay on record.
// @Tags         withdrawals
// @Produce      json
// @Param        request   body      request.WithdrawRequest true "request body"
// @Success      200      {object}   response.WithdrawalResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /withdrawals [post]
// @Security     BearerAuth
func (h *CatalogueHandler) HandleWithdraw(ctx *gin.Context) {
	var req request.WithdrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sellerEmail, respErr := h.resolveSellerEmail(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, removed, err := h.svc.Withdraw(ctx.Request.Context(), req.StockItemID, sellerEmail, req.Count)
	if err != nil {
		if errors.Is(err, service.ErrStockItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stock item", "ID", req.StockItemID))
			return
		}
		if errors.Is(err, service.ErrNotItemOwner) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleWithdraw -> h.svc.Withdraw -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WithdrawalResponse{
		Removed:   removed,
		Item:      item,
		Remaining: item.Remaining(),
	})
}

// resolveSellerEmail scopes withdrawal operations to the acting seller.
// Managers and admins may act on any seller via the seller_email query
// parameter.
func (h *CatalogueHandler) resolveSellerEmail(ctx *gin.Context) (string, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return "", respErr
	}

	if override := ctx.Query("seller_email"); override != "" &&
		(user.Role == domain.RoleManager || user.Role == domain.RoleAdmin) {
		return override, nil
	}

	return user.Email, nil
}
