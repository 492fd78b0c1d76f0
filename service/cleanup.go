package service

import (
	"context"
	"strings"

	"github.com/qbnguyen/cloudlet-service/entity"
	"github.com/qbnguyen/cloudlet-service/infra/produce"
)

// deriveObjectName extracts the store-side identifier for a file: the last
// path segment of the retrieval URL with any query string stripped, falling
// back to the last segment of the virtual path. Empty when neither yields a
// usable name.
func deriveObjectName(file *entity.File) string {
	if file.FileURL != "" {
		withoutQuery := file.FileURL
		if idx := strings.Index(withoutQuery, "?"); idx >= 0 {
			withoutQuery = withoutQuery[:idx]
		}
		if idx := strings.LastIndex(withoutQuery, "/"); idx >= 0 {
			withoutQuery = withoutQuery[idx+1:]
		}
		if withoutQuery != "" {
			return withoutQuery
		}
	}

	if file.Path != "" {
		name := file.Path
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		return name
	}

	return ""
}

// cleanupStoredObject removes a file's bytes from the object store on a
// best-effort basis: search by derived name first and delete under the
// store's own name, falling back to direct deletion by derived name. Failures
// are logged and queued for the retry worker; nothing propagates to the
// caller, so metadata deletion always proceeds.
func (s *FileService) cleanupStoredObject(ctx context.Context, file *entity.File) {
	name := deriveObjectName(file)
	if name == "" {
		return
	}

	target := name
	matches, err := s.store.Search(ctx, name, 1)
	if err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Cleanup] Search failed for '%s', falling back to direct delete", name)
	} else if len(matches) > 0 {
		target = matches[0].Name
	}

	if err := s.store.DeleteByName(ctx, target); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Cleanup] Failed to delete object '%s' for file %s", target, file.ID)
		s.enqueueCleanupRetry(ctx, file, target)
	}
}

func (s *FileService) enqueueCleanupRetry(ctx context.Context, file *entity.File, objectName string) {
	if s.cleanup == nil {
		return
	}

	msg := produce.CleanupRetryMessage{
		FileID:     file.ID.String(),
		OwnerID:    file.OwnerID,
		ObjectName: objectName,
		Attempt:    1,
	}
	if err := s.cleanup.PublishCleanupRetry(ctx, msg); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[Cleanup] Failed to enqueue retry for object '%s'", objectName)
	}
}
