package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/domain"
)

type EventService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Event, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List events, newest first
// @Tags         events
// @Produce      json
// @Param        limit    query      int  false "page size"
// @Param        offset   query      int  false "page offset"
// @Success      200      {array}    domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	limit, ok := optionalQueryInt(ctx, "limit")
	if !ok {
		return
	}
	offset, ok := optionalQueryInt(ctx, "offset")
	if !ok {
		return
	}

	events, err := h.svc.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// optionalQueryInt parses an optional integer query parameter, zero when
// absent.
func optionalQueryInt(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))
		return 0, false
	}

	return value, true
}
