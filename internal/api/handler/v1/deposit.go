package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/api/handler/v1/request"
	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
	"github.com/boardland/boardland-api/internal/service"
)

type DepositService interface {
	Submit(ctx context.Context, deposit service.Deposit) (domain.StockItem, error)
	QuoteFee(ctx context.Context, sessionID uint, unitPrice decimal.Decimal) (decimal.Decimal, error)
}

type DepositHandler struct {
	svc       DepositService
	uSvc      UserService
	uploadDir string
}

func NewDepositHandler(svc DepositService, uSvc UserService, uploadDir string) *DepositHandler {
	return &DepositHandler{
		svc:       svc,
		uSvc:      uSvc,
		uploadDir: uploadDir,
	}
}

// HandleSubmitDeposit godoc
// @Summary      Submit a game deposit
// @Description  Registers deposited copies of a game for a session. The deposit fee is computed from the session's fee schedule and must be settled on submission.
// @Tags         deposits
// @Accept       mpfd
// @Produce      json
// @Param        session_id   formData  int     true   "Session ID"
// @Param        seller_email formData  string  true   "Seller email"
// @Param        game_name    formData  string  true   "Game name"
// @Param        unit_price   formData  string  true   "Unit price"
// @Param        quantity     formData  int     true   "Quantity deposited"
// @Param        image        formData  file    false  "Game image"
// @Success      201      {object}   response.DepositResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deposits [post]
// @Security     BearerAuth
func (h *DepositHandler) HandleSubmitDeposit(ctx *gin.Context) {
	var req request.DepositRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Sellers deposit under their own email; managers and admins may register
	// deposits on behalf of any seller.
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if user.Role != domain.RoleManager && user.Role != domain.RoleAdmin && req.SellerEmail != user.Email {
		response.RenderErr(ctx, response.ErrPermissionDenied(
			errors.New("deposits may only be submitted under your own seller email")))
		return
	}

	imagePath, err := h.saveImage(ctx)
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitDeposit -> h.saveImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	item, err := h.svc.Submit(ctx.Request.Context(), service.Deposit{
		SessionID:       req.SessionID,
		SellerEmail:     req.SellerEmail,
		GameName:        req.GameName,
		UnitPrice:       req.ParsedUnitPrice(),
		Quantity:        req.Quantity,
		IsForSale:       req.IsForSale,
		FeePaid:         req.FeePaid,
		Publisher:       req.Publisher,
		Description:     req.Description,
		ImagePath:       imagePath,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		// A rejected submission must not leave the uploaded image behind.
		if imagePath != "" {
			_ = os.Remove(imagePath)
		}

		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", req.SessionID))
			return
		}
		if isDepositValidationErr(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSubmitDeposit -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.DepositResponse{
		Item:       item,
		DepositFee: item.DepositFee,
	})
}

// HandleQuoteFee godoc
// @Summary      Quote the deposit fee for a unit price
// @Tags         deposits
// @Produce      json
// @Param        session_id   query     int     true   "Session ID"
// @Param        unit_price   query     string  true   "Unit price"
// @Success      200      {object}   response.FeeQuoteResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deposits/quote [get]
// @Security     BearerAuth
func (h *DepositHandler) HandleQuoteFee(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Query("session_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session_id: %w", err)))
		return
	}

	unitPrice, err := decimal.NewFromString(ctx.Query("unit_price"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid unit_price: %w", err)))
		return
	}

	fee, err := h.svc.QuoteFee(ctx.Request.Context(), uint(sessionID), unitPrice)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}
		if errors.Is(err, service.ErrInvalidUnitPrice) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleQuoteFee -> h.svc.QuoteFee -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.FeeQuoteResponse{
		SessionID:  uint(sessionID),
		UnitPrice:  unitPrice,
		DepositFee: fee,
	})
}

// saveImage stores the optional game image under the upload directory with a
// random filename. A missing file part is not an error.
func (h *DepositHandler) saveImage(ctx *gin.Context) (string, error) {
	file, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}

		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(h.uploadDir, filename)
	if err = ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	return dst, nil
}

func isDepositValidationErr(err error) bool {
	return errors.Is(err, service.ErrInvalidSellerEmail) ||
		errors.Is(err, service.ErrEmptyGameName) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidUnitPrice) ||
		errors.Is(err, service.ErrDepositFeeUnpaid)
}
