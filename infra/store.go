package infra

import (
	"context"
	"encoding/json"
	"io"
)

// UploadResult is what an object store hands back after accepting bytes. The
// service layer persists it as file metadata; Raw keeps the store's full
// response verbatim.
type UploadResult struct {
	Name         string          `json:"name"`
	FilePath     string          `json:"file_path"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	FileType     string          `json:"file_type"`
	Size         int64           `json:"size"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

// StoredObject is a single match from an object-store search. Name is the
// store's own identifier, which may differ from the name we searched for
// (stores rename or namespace on ingest).
type StoredObject struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ObjectStore is the durable byte store behind the file metadata. Two
// implementations exist: MediaService (external CDN) and MinioStore
// (self-hosted bucket). Deletion is name-based with a search step first so
// store-side renames are honored.
type ObjectStore interface {
	Upload(ctx context.Context, data io.Reader, size int64, filename, contentType, folder string) (*UploadResult, error)
	Search(ctx context.Context, name string, limit int) ([]StoredObject, error)
	DeleteByName(ctx context.Context, name string) error
}
