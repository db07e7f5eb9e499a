package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/request"
	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/service"
)

type WalletService interface {
	Mint(ctx context.Context, actor domain.User, to uint, amount decimal.Decimal) error
	Burn(ctx context.Context, actor domain.User, amount decimal.Decimal) error
	Transfer(ctx context.Context, actor domain.User, to uint, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, actor domain.User, from, to uint, amount decimal.Decimal) error
	Approve(ctx context.Context, actor domain.User, spender uint, amount decimal.Decimal) error
	BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error)
	Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error)
	TotalSupply(ctx context.Context) (decimal.Decimal, error)
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, actor domain.User, paused bool) error
}

type WalletHandler struct {
	svc  WalletService
	uSvc UserService
}

func NewWalletHandler(svc WalletService, uSvc UserService) *WalletHandler {
	return &WalletHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// renderWalletErr maps the ledger failures; reports whether it rendered.
func renderWalletErr(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInsufficientAllowance),
		errors.Is(err, service.ErrSupplyCapExceeded),
		errors.Is(err, service.ErrLedgerPaused):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrInvalidAmount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		return false
	}

	return true
}

func parseAmount(ctx *gin.Context, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid amount %q", raw)))
		return decimal.Zero, false
	}

	return amount, true
}

// HandleMintCurrency godoc
// @Summary      Mint currency to a wallet
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.MintCurrencyRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/mint [post]
// @Security     BearerAuth
func (h *WalletHandler) HandleMintCurrency(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MintCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	if err := h.svc.Mint(ctx.Request.Context(), user, req.To, amount); err != nil {
		if renderWalletErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleMintCurrency -> h.svc.Mint -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleBurnCurrency godoc
// @Summary      Burn currency from the caller's wallet
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.BurnCurrencyRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/burn [post]
// @Security     BearerAuth
func (h *WalletHandler) HandleBurnCurrency(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BurnCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	if err := h.svc.Burn(ctx.Request.Context(), user, amount); err != nil {
		if renderWalletErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleBurnCurrency -> h.svc.Burn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleTransferCurrency godoc
// @Summary      Transfer currency from the caller's wallet
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.TransferCurrencyRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/transfer [post]
// @Security     BearerAuth
func (h *WalletHandler) HandleTransferCurrency(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TransferCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	if err := h.svc.Transfer(ctx.Request.Context(), user, req.To, amount); err != nil {
		if renderWalletErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleTransferCurrency -> h.svc.Transfer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleTransferFrom godoc
// @Summary      Move currency between wallets using the caller's allowance
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.TransferFromRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/transfer-from [post]
// @Security     BearerAuth
func (h *WalletHandler) HandleTransferFrom(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TransferFromRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	if err := h.svc.TransferFrom(ctx.Request.Context(), user, req.From, req.To, amount); err != nil {
		if renderWalletErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleTransferFrom -> h.svc.TransferFrom -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleApproveCurrency godoc
// @Summary      Set a spender's allowance over the caller's wallet
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.ApproveCurrencyRequest true "request body"
// @Success      204      "no content"
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/approve [post]
// @Security     BearerAuth
func (h *WalletHandler) HandleApproveCurrency(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ApproveCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}

	if err := h.svc.Approve(ctx.Request.Context(), user, req.Spender, amount); err != nil {
		if renderWalletErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleApproveCurrency -> h.svc.Approve -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleWalletBalance godoc
// @Summary      Get the caller's wallet balance
// @Tags         wallet
// @Produce      json
// @Success      200      {object}   response.WalletBalanceResponse
// @Failure      500      {object}   response.Err
// @Router       /wallet/balance [get]
// @Security     BearerAuth
func (h *WalletHandler) HandleWalletBalance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	balance, err := h.svc.BalanceOf(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleWalletBalance -> h.svc.BalanceOf -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WalletBalanceResponse{
		UserID:  user.ID,
		Balance: balance,
	})
}

// HandleWalletAllowance godoc
// @Summary      Get the caller's allowance toward a spender
// @Tags         wallet
// @Produce      json
// @Param        spender  query      int  true "spender user ID"
// @Success      200      {object}   response.WalletAllowanceResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/allowance [get]
// @Security     BearerAuth
func (h *WalletHandler) HandleWalletAllowance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	rawSpender := ctx.Query("spender")
	spender, err := strconv.ParseUint(rawSpender, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid spender %q", rawSpender)))
		return
	}

	allowance, err := h.svc.Allowance(ctx.Request.Context(), user.ID, uint(spender))
	if err != nil {
		err = fmt.Errorf("v1.HandleWalletAllowance -> h.svc.Allowance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WalletAllowanceResponse{
		OwnerID:   user.ID,
		SpenderID: uint(spender),
		Allowance: allowance,
	})
}

// HandleWalletSupply godoc
// @Summary      Get the currency's circulating supply
// @Tags         wallet
// @Produce      json
// @Success      200      {object}   response.WalletSupplyResponse
// @Failure      500      {object}   response.Err
// @Router       /wallet/supply [get]
// @Security     BearerAuth
func (h *WalletHandler) HandleWalletSupply(ctx *gin.Context) {
	total, err := h.svc.TotalSupply(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleWalletSupply -> h.svc.TotalSupply -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WalletSupplyResponse{
		TotalSupply: total,
	})
}

// HandleWalletPaused godoc
// @Summary      Get the ledger's paused state
// @Tags         wallet
// @Produce      json
// @Success      200      {object}   response.WalletPausedResponse
// @Failure      500      {object}   response.Err
// @Router       /wallet/paused [get]
// @Security     BearerAuth
func (h *WalletHandler) HandleWalletPaused(ctx *gin.Context) {
	paused, err := h.svc.Paused(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleWalletPaused -> h.svc.Paused -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WalletPausedResponse{
		Paused: paused,
	})
}

// HandleSetPaused godoc
// @Summary      Pause or resume ledger movements
// @Tags         wallet
// @Produce      json
// @Param        request  body       request.SetPausedRequest true "request body"
// @Success      200      {object}   response.WalletPausedResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /wallet/paused [put]
// @Security     BearerAuth
func (h *WalletHandler) HandleSetPaused(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetPausedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SetPaused(ctx.Request.Context(), user, *req.Paused); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleSetPaused -> h.svc.SetPaused -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WalletPausedResponse{
		Paused: *req.Paused,
	})
}
