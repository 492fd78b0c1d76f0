package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TypeFolder is the type marker for folder rows in the files table.
const TypeFolder = "folder"

// File represents a single entry in the virtual filesystem. Files and
// folders share the table; folders carry Size 0, Type "folder" and no
// FileURL. The hierarchy is defined by ParentID (nil = root level), not by
// Path, which is only a display hint.
type File struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(512);not null"`
	Path string    `json:"path" gorm:"type:varchar(1024);not null"`
	Size int64     `json:"size" gorm:"not null"`
	Type string    `json:"type" gorm:"type:varchar(255);not null"`

	FileURL      string `json:"file_url" gorm:"type:varchar(1024)"`
	ThumbnailURL string `json:"thumbnail_url" gorm:"type:varchar(1024)"`

	OwnerID  string     `json:"owner_id" gorm:"type:varchar(255);not null;index:idx_files_owner"`
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index:idx_files_parent"`

	IsFolder  bool `json:"is_folder" gorm:"not null;default:false"`
	IsStarred bool `json:"is_starred" gorm:"not null;default:false"`
	IsTrash   bool `json:"is_trash" gorm:"not null;index:idx_files_trash;default:false"`

	// Metadata keeps the raw object-store upload response so CDN-specific
	// attributes survive even when we don't model them.
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}
