package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qbnguyen/cloudlet-service/http/controller/dto"
	"github.com/qbnguyen/cloudlet-service/utils"
)

// UploadFile accepts a multipart upload, streams it to the configured object
// store and records the resulting metadata. This is the server-side
// alternative to direct client-to-store uploads.
func (ctrl *Controller) UploadFile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Upload] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Upload] Failed to get file from form data: %v", err)
		utils.JSON400(c, "Failed to get file: "+err.Error())
		return
	}

	var parentID *uuid.UUID
	if raw := c.PostForm("parent_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Upload] Invalid parent_id format: %v", err)
			utils.JSON400(c, "Invalid parent_id format")
			return
		}
		parentID = &parsed
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	src, err := fileHeader.Open()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to open uploaded file")
		utils.JSON500(c, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Upload] Uploading '%s' (%d bytes) for user %s",
		fileHeader.Filename, fileHeader.Size, userID)

	result, err := ctrl.Infra.Store.Upload(ctx, src, fileHeader.Size, fileHeader.Filename, contentType, userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Object store upload failed")
		utils.JSON500(c, "Failed to upload file")
		return
	}

	file, err := ctrl.Files.RecordUpload(ctx, userID, result, parentID)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to save file information")
		return
	}

	ctrl.invalidateListing(ctx, userID, parentID)
	utils.JSON200(c, file)
}

// GetUploadAuth returns signed parameters a client needs to upload straight
// to the media CDN. Pass-through only; nothing is recorded until the client
// reports the finished upload.
func (ctrl *Controller) GetUploadAuth(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")
	if userID == "" {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Upload] user_id not found in context")
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	if ctrl.Infra.Media == nil {
		utils.JSON400(c, "Direct uploads are not available for this store backend")
		return
	}

	token := uuid.New().String()
	expire := time.Now().Unix() + int64(ctrl.Config.EnvConfig.Upload.AuthExpire)
	signature := utils.SignUploadAuth(ctrl.Infra.Media.PrivateKey, token, expire)

	utils.JSON200(c, dto.UploadAuthResponseDTO{
		Token:     token,
		Expire:    expire,
		Signature: signature,
		PublicKey: ctrl.Infra.Media.PublicKey,
	})
}
