package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/request"
	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/service"
)

type BankService interface {
	BankID() uint
	DeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, error)
	SetDeedPrice(ctx context.Context, actor domain.User, edition, land, rarity int, amount decimal.Decimal) error
	BuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, error)
	SetBuildingPrice(ctx context.Context, actor domain.User, edition, land, buildType int, amount decimal.Decimal) error
	BuyDeed(ctx context.Context, buyer domain.User, edition, land, rarity int) (domain.Deed, decimal.Decimal, error)
	BuyBuilding(ctx context.Context, buyer domain.User, edition, land, buildType int, quantity int64) (int64, decimal.Decimal, error)
	SellDeed(ctx context.Context, seller domain.User, assetID int64) (decimal.Decimal, error)
	Reserve(ctx context.Context) (decimal.Decimal, error)
}

type BankHandler struct {
	svc  BankService
	uSvc UserService
}

func NewBankHandler(svc BankService, uSvc UserService) *BankHandler {
	return &BankHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// renderTradeErr maps the failures a bank trade surfaces; reports
// whether it rendered.
func renderTradeErr(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInsufficientAllowance),
		errors.Is(err, service.ErrInsufficientReserve),
		errors.Is(err, service.ErrSupplyExhausted),
		errors.Is(err, service.ErrLedgerPaused),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotApproved):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		return false
	}

	return true
}

// HandleGetDeedPrice godoc
// @Summary      Get the bank's deed price for a coordinate
// @Tags         bank
// @Produce      json
// @Param        edition  query      int  true "edition number"
// @Param        land     query      int  true "land index"
// @Param        rarity   query      int  true "rarity level"
// @Success      200      {object}   response.DeedPriceResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/prices/deed [get]
// @Security     BearerAuth
func (h *BankHandler) HandleGetDeedPrice(ctx *gin.Context) {
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

	price, err := h.svc.DeedPrice(ctx.Request.Context(), edition, land, rarity)
	if err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleGetDeedPrice -> h.svc.DeedPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeedPriceResponse{
		Edition: edition,
		Land:    land,
		Rarity:  rarity,
		Price:   price,
	})
}

// HandleSetDeedPrice godoc
// @Summary      Set the bank's deed price for a coordinate
// @Tags         bank
// @Produce      json
// @Param        request  body       request.SetDeedPriceRequest true "request body"
// @Success      200      {object}   response.DeedPriceResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/prices/deed [put]
// @Security     BearerAuth
func (h *BankHandler) HandleSetDeedPrice(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetDeedPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SetDeedPrice(ctx.Request.Context(), user, req.Edition, req.Land, req.Rarity, price); err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidAmount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSetDeedPrice -> h.svc.SetDeedPrice -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.DeedPriceResponse{
		Edition: req.Edition,
		Land:    req.Land,
		Rarity:  req.Rarity,
		Price:   price,
	})
}

// HandleGetBuildingPrice godoc
// @Summary      Get the bank's building unit price for a coordinate
// @Tags         bank
// @Produce      json
// @Param        edition     query   int  true "edition number"
// @Param        land        query   int  true "land index"
// @Param        build_type  query   int  true "build type"
// @Success      200      {object}   response.BuildingPriceResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/prices/building [get]
// @Security     BearerAuth
func (h *BankHandler) HandleGetBuildingPrice(ctx *gin.Context) {
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

	price, err := h.svc.BuildingPrice(ctx.Request.Context(), edition, land, buildType)
	if err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleGetBuildingPrice -> h.svc.BuildingPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BuildingPriceResponse{
		Edition:   edition,
		Land:      land,
		BuildType: buildType,
		Price:     price,
	})
}

// HandleSetBuildingPrice godoc
// @Summary      Set the bank's building unit price for a coordinate
// @Tags         bank
// @Produce      json
// @Param        request  body       request.SetBuildingPriceRequest true "request body"
// @Success      200      {object}   response.BuildingPriceResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/prices/building [put]
// @Security     BearerAuth
func (h *BankHandler) HandleSetBuildingPrice(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetBuildingPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SetBuildingPrice(ctx.Request.Context(), user, req.Edition, req.Land, req.BuildType, price); err != nil {
		if renderCoordinateErr(ctx, err) {
			return
		}

		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidAmount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSetBuildingPrice -> h.svc.SetBuildingPrice -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.BuildingPriceResponse{
		Edition:   req.Edition,
		Land:      req.Land,
		BuildType: req.BuildType,
		Price:     price,
	})
}

// HandleBuyDeed godoc
// @Summary      Buy a freshly minted deed from the bank
// @Tags         bank
// @Produce      json
// @Param        request  body       request.BuyDeedRequest true "request body"
// @Success      201      {object}   response.DeedPurchaseResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/buy/deed [post]
// @Security     BearerAuth
func (h *BankHandler) HandleBuyDeed(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BuyDeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deed, price, err := h.svc.BuyDeed(ctx.Request.Context(), user, req.Edition, req.Land, req.Rarity)
	if err != nil {
		if renderCoordinateErr(ctx, err) || renderTradeErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleBuyDeed -> h.svc.BuyDeed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.DeedPurchaseResponse{
		Deed:  deed,
		Price: price,
	})
}

// HandleBuyBuilding godoc
// @Summary      Buy building units from the bank
// @Tags         bank
// @Produce      json
// @Param        request  body       request.BuyBuildingRequest true "request body"
// @Success      201      {object}   response.BuildingPurchaseResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/buy/building [post]
// @Security     BearerAuth
func (h *BankHandler) HandleBuyBuilding(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BuyBuildingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	classID, total, err := h.svc.BuyBuilding(ctx.Request.Context(), user, req.Edition, req.Land, req.BuildType, req.Quantity)
	if err != nil {
		if renderCoordinateErr(ctx, err) || renderTradeErr(ctx, err) {
			return
		}

		if errors.Is(err, service.ErrInvalidQuantity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleBuyBuilding -> h.svc.BuyBuilding -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.BuildingPurchaseResponse{
		ClassID:   classID,
		Edition:   req.Edition,
		Land:      req.Land,
		BuildType: req.BuildType,
		Quantity:  req.Quantity,
		Total:     total,
	})
}

// HandleSellDeed godoc
// @Summary      Sell a deed back to the bank at the table price
// @Tags         bank
// @Produce      json
// @Param        request  body       request.SellDeedRequest true "request body"
// @Success      200      {object}   response.DeedSaleResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bank/sell/deed [post]
// @Security     BearerAuth
func (h *BankHandler) HandleSellDeed(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SellDeedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	price, err := h.svc.SellDeed(ctx.Request.Context(), user, req.AssetID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAsset) {
			response.RenderErr(ctx, response.ErrNotFound("deed", "assetID", req.AssetID))
			return
		}
		if renderTradeErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleSellDeed -> h.svc.SellDeed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeedSaleResponse{
		AssetID: req.AssetID,
		Price:   price,
	})
}

// HandleBankReserve godoc
// @Summary      Get the bank's currency reserve
// @Tags         bank
// @Produce      json
// @Success      200      {object}   response.BankReserveResponse
// @Failure      500      {object}   response.Err
// @Router       /bank/reserve [get]
// @Security     BearerAuth
func (h *BankHandler) HandleBankReserve(ctx *gin.Context) {
	reserve, err := h.svc.Reserve(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleBankReserve -> h.svc.Reserve -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BankReserveResponse{
		BankID:  h.svc.BankID(),
		Reserve: reserve,
	})
}
