package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/qbnguyen/cloudlet-service/http/controller/dto"
	"github.com/qbnguyen/cloudlet-service/utils"
)

func (ctrl *Controller) CreateFolder(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Folder] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var req dto.CreateFolderRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Failed to bind JSON: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	if req.UserID != userID {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] User %s attempted to create a folder for %s", userID, req.UserID)
		utils.JSON401(c, "Unauthorized")
		return
	}

	folder, err := ctrl.Files.CreateFolder(ctx, userID, req.Name, req.ParentID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to create folder")
		return
	}

	ctrl.invalidateListing(ctx, userID, req.ParentID)
	utils.JSON200(c, gin.H{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}
