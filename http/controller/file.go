package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qbnguyen/cloudlet-service/entity"
	"github.com/qbnguyen/cloudlet-service/http/controller/dto"
	"github.com/qbnguyen/cloudlet-service/utils"
)

func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	ownerID := c.Query("user_id")

	var parentID *uuid.UUID
	if raw := c.Query("parent_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid parent_id format: %v", err)
			utils.JSON400(c, "Invalid parent_id format")
			return
		}
		parentID = &parsed
	}

	cacheKey := listingCacheKey(ownerID, parentID)
	if ownerID == userID {
		var cached []entity.File
		if err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached); err == nil {
			utils.JSON200(c, cached)
			return
		}
	}

	files, err := ctrl.Files.List(ctx, userID, ownerID, parentID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to fetch files")
		return
	}

	if err := ctrl.Infra.Redis.Set(ctx, cacheKey, files, ctrl.listingCacheTTL()); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to cache listing for user %s: %v", userID, err)
	}

	utils.JSON200(c, files)
}

func (ctrl *Controller) RecordUpload(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var req dto.RecordUploadRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	if req.UserID != userID {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] User %s attempted to record an upload for %s", userID, req.UserID)
		utils.JSON401(c, "Unauthorized")
		return
	}

	file, err := ctrl.Files.RecordUpload(ctx, userID, req.Upload, req.ParentID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to save file information")
		return
	}

	ctrl.invalidateListing(ctx, userID, req.ParentID)
	utils.JSON200(c, file)
}

func (ctrl *Controller) ToggleStar(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file id format: %v", err)
		utils.JSON400(c, "Invalid file id format")
		return
	}

	file, err := ctrl.Files.ToggleStar(ctx, userID, fileID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to update file")
		return
	}

	ctrl.invalidateListing(ctx, userID, file.ParentID)
	utils.JSON200(c, file)
}

func (ctrl *Controller) ToggleTrash(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file id format: %v", err)
		utils.JSON400(c, "Invalid file id format")
		return
	}

	file, action, err := ctrl.Files.ToggleTrash(ctx, userID, fileID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to update the file's trash status")
		return
	}

	ctrl.invalidateListing(ctx, userID, file.ParentID)
	utils.JSON200(c, gin.H{
		"file":    file,
		"message": "File " + action + " successfully",
	})
}

func (ctrl *Controller) DeleteFile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file id format: %v", err)
		utils.JSON400(c, "Invalid file id format")
		return
	}

	file, err := ctrl.Files.DeletePermanently(ctx, userID, fileID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to delete file")
		return
	}

	ctrl.invalidateListing(ctx, userID, file.ParentID)
	utils.JSON200(c, gin.H{
		"message":      "File deleted successfully",
		"deleted_file": file,
	})
}

func (ctrl *Controller) EmptyTrash(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	deleted, err := ctrl.Files.EmptyTrash(ctx, userID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to empty trash")
		return
	}

	if deleted == 0 {
		utils.JSON200(c, gin.H{
			"message": "No files trashed",
			"deleted": 0,
		})
		return
	}

	ctrl.invalidateAllListings(ctx, userID)
	utils.JSON200(c, gin.H{
		"message": "Trash emptied successfully",
		"deleted": deleted,
	})
}
