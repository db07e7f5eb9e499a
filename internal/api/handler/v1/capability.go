package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/request"
	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/service"
)

type CapabilityService interface {
	Grant(ctx context.Context, granter domain.User, principalID uint, name string) error
	Revoke(ctx context.Context, revoker domain.User, principalID uint, name string) error
	ListByPrincipal(ctx context.Context, principalID uint) ([]string, error)
}

type CapabilityHandler struct {
	svc  CapabilityService
	uSvc UserService
}

func NewCapabilityHandler(svc CapabilityService, uSvc UserService) *CapabilityHandler {
	return &CapabilityHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGrantCapability godoc
// @Summary      Grant a capability to a principal
// @Tags         capabilities
// @Produce      json
// @Param        request  body       request.CapabilityGrantRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /capabilities/grant [post]
// @Security     BearerAuth
func (h *CapabilityHandler) HandleGrantCapability(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CapabilityGrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Grant(ctx.Request.Context(), user, req.PrincipalID, req.Name); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUnknownCapability):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleGrantCapability -> h.svc.Grant -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRevokeCapability godoc
// @Summary      Revoke a capability from a principal
// @Tags         capabilities
// @Produce      json
// @Param        request  body       request.CapabilityGrantRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /capabilities/revoke [post]
// @Security     BearerAuth
func (h *CapabilityHandler) HandleRevokeCapability(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CapabilityGrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Revoke(ctx.Request.Context(), user, req.PrincipalID, req.Name); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUnknownCapability):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRevokeCapability -> h.svc.Revoke -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListCapabilities godoc
// @Summary      List a principal's capabilities
// @Tags         capabilities
// @Produce      json
// @Param        principalID  path   int  true "principal user ID"
// @Success      200      {object}   response.CapabilitiesResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /capabilities/{principalID} [get]
// @Security     BearerAuth
func (h *CapabilityHandler) HandleListCapabilities(ctx *gin.Context) {
	rawPrincipalID := ctx.Param("principalID")
	principalID, err := strconv.ParseUint(rawPrincipalID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid principal ID %q", rawPrincipalID)))
		return
	}

	names, err := h.svc.ListByPrincipal(ctx.Request.Context(), uint(principalID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListCapabilities -> h.svc.ListByPrincipal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CapabilitiesResponse{
		PrincipalID:  uint(principalID),
		Capabilities: names,
	})
}
