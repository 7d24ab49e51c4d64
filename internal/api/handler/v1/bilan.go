package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boardland/boardland-api/internal/api/handler/v1/response"
	"github.com/boardland/boardland-api/internal/domain"
)

type BilanService interface {
	Generate(ctx context.Context, opts domain.BilanOptions) (domain.Bilan, error)
}

type BilanHandler struct {
	svc BilanService
}

func NewBilanHandler(svc BilanService) *BilanHandler {
	return &BilanHandler{
		svc: svc,
	}
}

// HandleGetBilan godoc
// @Summary      Generate the festival bilan report
// @Description  Aggregates revenue per session, the sold/unsold split and the sell-through ratio, optionally scoped to one seller or one session.
// @Tags         reports
// @Produce      json
// @Param        seller_email    query     string  false  "Restrict to one seller"
// @Param        session_id      query     int     false  "Restrict to one session"
// @Param        fixed_charges   query     string  false  "Fixed charges to subtract from cumulative revenue"
// @Success      200      {object}   domain.Bilan
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/bilan [get]
// @Security     BearerAuth
func (h *BilanHandler) HandleGetBilan(ctx *gin.Context) {
	opts := domain.BilanOptions{
		SellerEmail: ctx.Query("seller_email"),
	}

	if raw := ctx.Query("session_id"); raw != "" {
		sessionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session_id: %w", err)))
			return
		}
		opts.SessionID = uint(sessionID)
	}

	if raw := ctx.Query("fixed_charges"); raw != "" {
		charges, err := decimal.NewFromString(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid fixed_charges: %w", err)))
			return
		}
		opts.FixedCharges = charges
	}

	bilan, err := h.svc.Generate(ctx.Request.Context(), opts)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBilan -> h.svc.Generate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, bilan)
}
