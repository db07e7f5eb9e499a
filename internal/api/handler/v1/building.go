package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/request"
	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/service"
)

type BuildingService interface {
	Mint(ctx context.Context, actor domain.User, to uint, edition, land, buildType int, quantity int64) (int64, error)
	BalanceOf(ctx context.Context, owner uint, edition, land, buildType int) (int64, error)
	TotalSupply(ctx context.Context, edition, land, buildType int) (int64, error)
	Transfer(ctx context.Context, actor domain.User, edition, land, buildType int, to uint, quantity int64) error
}

type BuildingHandler struct {
	svc  BuildingService
	uSvc UserService
}

func NewBuildingHandler(svc BuildingService, uSvc UserService) *BuildingHandler {
	return &BuildingHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleMintBuilding godoc
// @Summary      Mint building units
// @Tags         buildings
// @Produce      json
// @Param        request  body       request.MintBuildingRequest true "request body"
// @Success      201      {object}   response.BuildingMintResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buildings/mint [post]
// @Security     BearerAuth
func (h *BuildingHandler) HandleMintBuilding(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MintBuildingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	classID, err := h.svc.Mint(ctx.Request.Context(), user, req.To, req.Edition, req.Land, req.BuildType, req.Quantity)
	if err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleMintBuilding -> h.svc.Mint -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.BuildingMintResponse{
		ClassID:   classID,
		Edition:   req.Edition,
		Land:      req.Land,
		BuildType: req.BuildType,
		Quantity:  req.Quantity,
		OwnerID:   req.To,
	})
}

// HandleBuildingBalance godoc
// @Summary      Get the caller's balance for a building class
// @Tags         buildings
// @Produce      json
// @Param        edition     query   int  true "edition number"
// @Param        land        query   int  true "land index"
// @Param        build_type  query   int  true "build type"
// @Success      200      {object}   response.BuildingBalanceResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buildings/balance [get]
// @Security     BearerAuth
func (h *BuildingHandler) HandleBuildingBalance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	edition, ok := queryInt(ctx, "edition")
	if !ok {
		return
	}
	land, ok := queryInt(ctx, "land")
	if !ok {
		return
	}
	buildType, ok := queryInt(ctx, "build_type")
	if !ok {
		return
	}

	balance, err := h.svc.BalanceOf(ctx.Request.Context(), user.ID, edition, land, buildType)
	if err != nil {
		err = fmt.Errorf("v1.HandleBuildingBalance -> h.svc.BalanceOf -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BuildingBalanceResponse{
		OwnerID:   user.ID,
		Edition:   edition,
		Land:      land,
		BuildType: buildType,
		Balance:   balance,
	})
}

// HandleBuildingSupply godoc
// @Summary      Total minted units of a building class
// @Tags         buildings
// @Produce      json
// @Param        edition     query   int  true "edition number"
// @Param        land        query   int  true "land index"
// @Param        build_type  query   int  true "build type"
// @Success      200      {object}   response.BuildingSupplyResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buildings/supply [get]
// @Security     BearerAuth
func (h *BuildingHandler) HandleBuildingSupply(ctx *gin.Context) {
	edition, ok := queryInt(ctx, "edition")
	if !ok {
		return
	}
	land, ok := queryInt(ctx, "land")
	if !ok {
		return
	}
	buildType, ok := queryInt(ctx, "build_type")
	if !ok {
		return
	}

	supply, err := h.svc.TotalSupply(ctx.Request.Context(), edition, land, buildType)
	if err != nil {
		err = fmt.Errorf("v1.HandleBuildingSupply -> h.svc.TotalSupply -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BuildingSupplyResponse{
		Edition:     edition,
		Land:        land,
		BuildType:   buildType,
		TotalSupply: supply,
	})
}

// HandleTransferBuilding godoc
// @Summary      Transfer building units the caller holds
// @Tags         buildings
// @Produce      json
// @Param        request  body       request.TransferBuildingRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buildings/transfer [post]
// @Security     BearerAuth
func (h *BuildingHandler) HandleTransferBuilding(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TransferBuildingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.Transfer(ctx.Request.Context(), user, req.Edition, req.Land, req.BuildType, req.To, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientUnits):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientUnits))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleTransferBuilding -> h.svc.Transfer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
