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

type SessionService interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	GetByID(ctx context.Context, id uint) (domain.Session, error)
	BulkUpdate(ctx context.Context, sessions []domain.Session) error
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleCreateSession godoc
// @Summary      Create a festival session
// @Tags         sessions
// @Produce      json
// @Param        request   body      request.CreateSessionRequest true "request body"
// @Success      201      {object}   domain.Session
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := req.ToDomain()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), session)
	if err != nil {
		if isSessionValidationErr(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListSessions godoc
// @Summary      List all festival sessions
// @Tags         sessions
// @Produce      json
// @Success      200      {object}   []domain.Session
// @Failure      500      {object}   response.Err
// @Router       /sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get a festival session by ID
// @Tags         sessions
// @Produce      json
// @Param        sessionID   path      int  true  "Session ID"
// @Success      200      {object}   domain.Session
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("sessionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid session ID: %w", err)))
		return
	}

	session, err := h.svc.GetByID(ctx.Request.Context(), uint(sessionID))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleUpdateSessions godoc
// @Summary      Update festival sessions in bulk
// @Description  Applies every modified row in one transaction; any failure rolls the batch back.
// @Tags         sessions
// @Produce      json
// @Param        request   body      request.UpdateSessionsRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSessions(ctx *gin.Context) {
	var req request.UpdateSessionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sessions := make([]domain.Session, 0, len(req.Sessions))
	for i := range req.Sessions {
		session, err := req.Sessions[i].ToDomain()
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("session %v: %w", req.Sessions[i].ID, err)))
			return
		}
		session.ID = req.Sessions[i].ID
		sessions = append(sessions, session)
	}

	if err := h.svc.BulkUpdate(ctx.Request.Context(), sessions); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "batch", err.Error()))
			return
		}
		if isSessionValidationErr(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSessions -> h.svc.BulkUpdate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "sessions updated"})
}

func isSessionValidationErr(err error) bool {
	return errors.Is(err, service.ErrMissingSessionFields) ||
		errors.Is(err, service.ErrSessionDatesInverted) ||
		errors.Is(err, service.ErrNegativeFee)
}
