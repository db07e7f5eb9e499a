package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tycoonworld/estate-api/internal/api/handler/v1/response"
	"github.com/tycoonworld/estate-api/internal/api/middleware"
	"github.com/tycoonworld/estate-api/internal/domain"
)

// getUserFromContext loads the authenticated user set by the JWT
// middleware. Handlers needing the caller's role or capabilities go
// through here.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("user not authenticated")
	}

	userID, ok := value.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("invalid user context")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.getUserFromContext -> uSvc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}
