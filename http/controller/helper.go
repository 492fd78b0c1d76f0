package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qbnguyen/cloudlet-service/service"
	"github.com/qbnguyen/cloudlet-service/utils"
)

// respondServiceError maps service errors onto HTTP responses. Business
// errors stay specific; anything else is a generic 500 with the detail kept
// server-side.
func (ctrl *Controller) respondServiceError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrValidation):
		utils.JSON400(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] %v", err)
		utils.JSON401(c, "Unauthorized")
	case errors.Is(err, service.ErrNotFound):
		utils.JSON404(c, "File not found")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] %s", fallback)
		utils.JSON500(c, fallback)
	}
}

func listingCacheKey(ownerID string, parentID *uuid.UUID) string {
	parent := "root"
	if parentID != nil {
		parent = parentID.String()
	}
	return fmt.Sprintf("files:%s:%s", ownerID, parent)
}

func (ctrl *Controller) listingCacheTTL() time.Duration {
	return time.Duration(ctrl.Config.EnvConfig.Redis.CacheTTL) * time.Second
}

// invalidateListing drops the cached listing of one parent. Cache failures
// are not worth failing a request over.
func (ctrl *Controller) invalidateListing(ctx context.Context, ownerID string, parentID *uuid.UUID) {
	if err := ctrl.Infra.Redis.Delete(ctx, listingCacheKey(ownerID, parentID)); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to invalidate listing for user %s: %v", ownerID, err)
	}
}

// invalidateAllListings drops every cached listing of the owner. Used by
// EmptyTrash, which touches an unknown set of parents.
func (ctrl *Controller) invalidateAllListings(ctx context.Context, ownerID string) {
	pattern := fmt.Sprintf("files:%s:*", ownerID)
	keys, err := ctrl.Infra.Redis.Client.Keys(ctx, pattern).Result()
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to scan listings for user %s: %v", ownerID, err)
		return
	}
	if err := ctrl.Infra.Redis.Delete(ctx, keys...); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to drop listings for user %s: %v", ownerID, err)
	}
}
