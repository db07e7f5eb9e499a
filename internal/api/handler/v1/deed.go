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

type DeedService interface {
	Mint(ctx context.Context, actor domain.User, to uint, edition, land, rarity int) (domain.Deed, error)
	GetDeed(ctx context.Context, assetID int64) (domain.Deed, error)
	Exists(ctx context.Context, assetID int64) (bool, error)
	CountOf(ctx context.Context, edition, land, rarity int) (int64, error)
	TotalSupply(ctx context.Context) (int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Deed, error)
	Transfer(ctx context.Context, actor domain.User, assetID int64, to uint) (domain.Deed, error)
	Approve(ctx context.Context, actor domain.User, assetID int64, spender uint) error
}

type DeedHandler struct {
	svc  DeedService
	uSvc UserService
}

func NewDeedHandler(svc DeedService, uSvc UserService) *DeedHandler {
	return &DeedHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func pathAssetID(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("assetID")
	assetID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || assetID < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid asset ID %q", raw)))
		return 0, false
	}

	return assetID, true
}

// renderCoordinateErr maps the shared coordinate failures; reports
// whether it rendered.
func renderCoordinateErr(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrUnknownEdition):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrUnknownEdition))
	case errors.Is(err, service.ErrInvalidCoordinate):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCoordinate))
	default:
		return false
	}

	return true
}

// HandleMintDeed godoc
// @Summary      Mint a new land deed
// @Tags         deeds
// @Produce      json
// @Param        request  body       request.MintDeedRequest true "request body"
// @Success      201      {object}   domain.Deed
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/mint [post]
// @Security     BearerAuth
func (h *DeedHandler) HandleMintDeed(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MintDeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deed, err := h.svc.Mint(ctx.Request.Context(), user, req.To, req.Edition, req.Land, req.Rarity)
	if err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrSupplyExhausted):
			response.RenderErr(ctx, response.ErrConflict(service.ErrSupplyExhausted))
		default:
			err = fmt.Errorf("v1.HandleMintDeed -> h.svc.Mint -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, deed)
}

// HandleGetDeed godoc
// @Summary      Get a deed by asset ID
// @Tags         deeds
// @Produce      json
// @Param        assetID  path       int  true "asset ID"
// @Success      200      {object}   domain.Deed
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/{assetID} [get]
// @Security     BearerAuth
func (h *DeedHandler) HandleGetDeed(ctx *gin.Context) {
	assetID, ok := pathAssetID(ctx)
	if !ok {
		return
	}

	deed, err := h.svc.GetDeed(ctx.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAsset) {
			response.RenderErr(ctx, response.ErrNotFound("deed", "assetID", assetID))
			return
		}

		err = fmt.Errorf("v1.HandleGetDeed -> h.svc.GetDeed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, deed)
}

// HandleDeedExists godoc
// @Summary      Check whether an asset ID is minted
// @Tags         deeds
// @Produce      json
// @Param        assetID  path       int  true "asset ID"
// @Success      200      {object}   response.DeedExistsResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/{assetID}/exists [get]
// @Security     BearerAuth
func (h *DeedHandler) HandleDeedExists(ctx *gin.Context) {
	assetID, ok := pathAssetID(ctx)
	if !ok {
		return
	}

	exists, err := h.svc.Exists(ctx.Request.Context(), assetID)
	if err != nil {
		err = fmt.Errorf("v1.HandleDeedExists -> h.svc.Exists -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeedExistsResponse{
		AssetID: assetID,
		Exists:  exists,
	})
}

// HandleDeedCount godoc
// @Summary      Count minted deeds for a coordinate
// @Tags         deeds
// @Produce      json
// @Param        edition  query      int  true "edition number"
// @Param        land     query      int  true "land index"
// @Param        rarity   query      int  true "rarity level"
// @Success      200      {object}   response.DeedCountResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/count [get]
// @Security     BearerAuth
func (h *DeedHandler) HandleDeedCount(ctx *gin.Context) {
	edition, ok := queryInt(ctx, "edition")
	if !ok {
		return
	}
	land, ok := queryInt(ctx, "land")
	if !ok {
		return
	}
	rarity, ok := queryInt(ctx, "rarity")
	if !ok {
		return
	}

	count, err := h.svc.CountOf(ctx.Request.Context(), edition, land, rarity)
	if err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleDeedCount -> h.svc.CountOf -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeedCountResponse{
		Edition: edition,
		Land:    land,
		Rarity:  rarity,
		Count:   count,
	})
}

// HandleDeedTotalSupply godoc
// @Summary      Total number of deeds ever minted
// @Tags         deeds
// @Produce      json
// @Success      200      {object}   response.DeedTotalSupplyResponse
// @Failure      500      {object}   response.Err
// @Router       /deeds/supply [get]
// @Security     BearerAuth
func (h *DeedHandler) HandleDeedTotalSupply(ctx *gin.Context) {
	total, err := h.svc.TotalSupply(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDeedTotalSupply -> h.svc.TotalSupply -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeedTotalSupplyResponse{
		TotalSupply: total,
	})
}

// HandleListMyDeeds godoc
// @Summary      List the caller's deeds
// @Tags         deeds
// @Produce      json
// @Success      200      {array}    domain.Deed
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds [get]
// @Security     BearerAuth
func (h *DeedHandler) HandleListMyDeeds(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deeds, err := h.svc.ListByOwner(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyDeeds -> h.svc.ListByOwner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, deeds)
}

// HandleTransferDeed godoc
// @Summary      Transfer a deed the caller owns
// @Tags         deeds
// @Produce      json
// @Param        assetID  path       int  true "asset ID"
// @Param        request  body       request.TransferDeedRequest true "request body"
// @Success      200      {object}   domain.Deed
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/{assetID}/transfer [post]
// @Security     BearerAuth
func (h *DeedHandler) HandleTransferDeed(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	assetID, ok := pathAssetID(ctx)
	if !ok {
		return
	}

	var req request.TransferDeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deed, err := h.svc.Transfer(ctx.Request.Context(), user, assetID, req.To)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownAsset):
			response.RenderErr(ctx, response.ErrNotFound("deed", "assetID", assetID))
		case errors.Is(err, service.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleTransferDeed -> h.svc.Transfer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, deed)
}

// HandleApproveDeed godoc
// @Summary      Approve a spender to move a deed
// @Tags         deeds
// @Produce      json
// @Param        assetID  path       int  true "asset ID"
// @Param        request  body       request.ApproveDeedRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deeds/{assetID}/approve [post]
// @Security     BearerAuth
func (h *DeedHandler) HandleApproveDeed(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	assetID, ok := pathAssetID(ctx)
	if !ok {
		return
	}

	var req request.ApproveDeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Approve(ctx.Request.Context(), user, assetID, req.Spender); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownAsset):
			response.RenderErr(ctx, response.ErrNotFound("deed", "assetID", assetID))
		case errors.Is(err, service.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleApproveDeed -> h.svc.Approve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// queryInt parses a required non-negative integer query parameter.
func queryInt(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))
		return 0, false
	}

	return value, true
}
