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

type BoardService interface {
	GetEdition(ctx context.Context, number int) (domain.Edition, error)
	LatestEditionNumber(ctx context.Context) (int, error)
	CreateEdition(ctx context.Context, actor domain.User, lands, rarityLevels, buildTypes int, buildableLands []int) (domain.Edition, error)
}

type BoardHandler struct {
	svc  BoardService
	uSvc UserService
}

func NewBoardHandler(svc BoardService, uSvc UserService) *BoardHandler {
	return &BoardHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetEdition godoc
// @Summary      Get a board edition
// @Tags         board
// @Produce      json
// @Param        edition  path       int  true "edition number"
// @Success      200      {object}   domain.Edition
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /board/editions/{edition} [get]
// @Security     BearerAuth
func (h *BoardHandler) HandleGetEdition(ctx *gin.Context) {
	number, ok := pathInt(ctx, "edition")
	if !ok {
		return
	}

	edition, err := h.svc.GetEdition(ctx.Request.Context(), number)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEdition) {
			response.RenderErr(ctx, response.ErrNotFound("edition", "number", number))
			return
		}

		err = fmt.Errorf("v1.HandleGetEdition -> h.svc.GetEdition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, edition)
}

// HandleGetLatestEdition godoc
// @Summary      Get the latest board edition
// @Tags         board
// @Produce      json
// @Success      200      {object}   domain.Edition
// @Failure      500      {object}   response.Err
// @Router       /board/latest [get]
// @Security     BearerAuth
func (h *BoardHandler) HandleGetLatestEdition(ctx *gin.Context) {
	number, err := h.svc.LatestEditionNumber(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLatestEdition -> h.svc.LatestEditionNumber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	edition, err := h.svc.GetEdition(ctx.Request.Context(), number)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLatestEdition -> h.svc.GetEdition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, edition)
}

// HandleCreateEdition godoc
// @Summary      Create a new board edition
// @Tags         board
// @Produce      json
// @Param        request  body       request.CreateEditionRequest true "request body"
// @Success      201      {object}   domain.Edition
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /board/editions [post]
// @Security     BearerAuth
func (h *BoardHandler) HandleCreateEdition(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEditionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	edition, err := h.svc.CreateEdition(ctx.Request.Context(), user, req.Lands, req.RarityLevels, req.BuildTypes, req.BuildableLands)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidEditionConfig):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateEdition -> h.svc.CreateEdition -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, edition)
}

// pathInt parses a non-negative integer path parameter, rendering a 400
// itself when the segment is malformed.
func pathInt(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Param(name)
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))
		return 0, false
	}

	return value, true
}
