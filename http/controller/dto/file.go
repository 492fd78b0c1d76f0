package dto

import (
	"github.com/google/uuid"

	"github.com/qbnguyen/cloudlet-service/infra"
)

type CreateFolderRequestDTO struct {
	Name     string     `json:"name" binding:"required"`
	UserID   string     `json:"user_id" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// RecordUploadRequestDTO carries the object-store result of a direct
// client-to-store upload so the server can persist the metadata.
type RecordUploadRequestDTO struct {
	UserID   string              `json:"user_id" binding:"required"`
	ParentID *uuid.UUID          `json:"parent_id"`
	Upload   *infra.UploadResult `json:"upload" binding:"required"`
}

type UploadAuthResponseDTO struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
}
