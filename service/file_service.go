package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/qbnguyen/cloudlet-service/entity"
	"github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/repository"
)

// Trash toggle action labels, kept user-facing.
const (
	ActionTrashed  = "moved to trash-bin"
	ActionRestored = "restored to the previous location"
)

// List returns the entries directly under parentID (nil = root) for ownerID.
// The requested owner must be the authenticated user.
func (s *FileService) List(ctx context.Context, authUserID, ownerID string, parentID *uuid.UUID) ([]entity.File, error) {
	if ownerID == "" || ownerID != authUserID {
		return nil, fmt.Errorf("%w: cannot list another user's files", ErrForbidden)
	}

	files, err := s.repo.FindByOwnerAndParent(ownerID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// CreateFolder creates a folder entry, root-level or nested. A given parent
// must exist, belong to the owner and actually be a folder.
func (s *FileService) CreateFolder(ctx context.Context, ownerID, name string, parentID *uuid.UUID) (*entity.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrValidation)
	}

	if err := s.checkParentFolder(ownerID, parentID); err != nil {
		return nil, err
	}

	folder := &entity.File{
		ID:       uuid.New(),
		Name:     name,
		Path:     fmt.Sprintf("/folders/%s/%s", ownerID, uuid.New()),
		Size:     0,
		Type:     entity.TypeFolder,
		OwnerID:  ownerID,
		ParentID: parentID,
		IsFolder: true,
	}

	if err := s.repo.Create(folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.logger.InfoWithContextf(ctx, "[File] Created folder '%s' (%s) for user %s", folder.Name, folder.ID, ownerID)
	return folder, nil
}

// RecordUpload persists metadata for an upload the object store has already
// accepted. The byte transfer is not this service's job; a result with no
// retrieval URL is rejected.
func (s *FileService) RecordUpload(ctx context.Context, ownerID string, result *infra.UploadResult, parentID *uuid.UUID) (*entity.File, error) {
	if result == nil || result.URL == "" {
		return nil, fmt.Errorf("%w: upload result has no file URL", ErrValidation)
	}

	if err := s.checkParentFolder(ownerID, parentID); err != nil {
		return nil, err
	}

	name := result.Name
	if name == "" {
		name = "Untitled"
	}
	path := result.FilePath
	if path == "" {
		path = fmt.Sprintf("/cloudlet/%s/%s", ownerID, name)
	}
	fileType := result.FileType
	if fileType == "" {
		fileType = "image"
	}

	file := &entity.File{
		ID:           uuid.New(),
		Name:         name,
		Path:         path,
		Size:         result.Size,
		Type:         fileType,
		FileURL:      result.URL,
		ThumbnailURL: result.ThumbnailURL,
		OwnerID:      ownerID,
		ParentID:     parentID,
		Metadata:     datatypes.JSON(result.Raw),
	}

	if err := s.repo.Create(file); err != nil {
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}

	s.logger.InfoWithContextf(ctx, "[File] Recorded upload '%s' (%s, %d bytes) for user %s", file.Name, file.ID, file.Size, ownerID)
	return file, nil
}

// ToggleStar flips the starred flag. Two successive calls return the entry to
// its original state.
func (s *FileService) ToggleStar(ctx context.Context, ownerID string, fileID uuid.UUID) (*entity.File, error) {
	file, err := s.loadOwned(fileID, ownerID)
	if err != nil {
		return nil, err
	}

	file.IsStarred = !file.IsStarred
	if err := s.repo.Save(file); err != nil {
		return nil, fmt.Errorf("failed to update star flag: %w", err)
	}

	return file, nil
}

// ToggleTrash flips the trash flag and reports which way it went. Trashing a
// folder does not touch its children; they keep their own flags.
func (s *FileService) ToggleTrash(ctx context.Context, ownerID string, fileID uuid.UUID) (*entity.File, string, error) {
	file, err := s.loadOwned(fileID, ownerID)
	if err != nil {
		return nil, "", err
	}

	file.IsTrash = !file.IsTrash
	if err := s.repo.Save(file); err != nil {
		return nil, "", fmt.Errorf("failed to update trash flag: %w", err)
	}

	action := ActionRestored
	if file.IsTrash {
		action = ActionTrashed
	}
	return file, action, nil
}

// DeletePermanently removes the row and, for non-folders, attempts to remove
// the stored object. Object-store failures never block the metadata delete.
func (s *FileService) DeletePermanently(ctx context.Context, ownerID string, fileID uuid.UUID) (*entity.File, error) {
	file, err := s.loadOwned(fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if !file.IsFolder {
		s.cleanupStoredObject(ctx, file)
	}

	if err := s.repo.DeleteByIDAndOwner(fileID, ownerID); err != nil {
		return nil, fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.InfoWithContextf(ctx, "[File] Permanently deleted '%s' (%s) for user %s", file.Name, file.ID, ownerID)
	return file, nil
}

// EmptyTrash removes every trashed entry of the owner. Object cleanup runs
// concurrently, one goroutine per file, and all attempts settle before the
// rows are deleted in one statement. Returns the number of rows deleted.
func (s *FileService) EmptyTrash(ctx context.Context, ownerID string) (int64, error) {
	trashed, err := s.repo.FindTrashedByOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load trashed files: %w", err)
	}

	if len(trashed) == 0 {
		return 0, nil
	}

	var wg sync.WaitGroup
	for i := range trashed {
		file := &trashed[i]
		if file.IsFolder {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.cleanupStoredObject(ctx, file)
		}()
	}
	wg.Wait()

	deleted, err := s.repo.DeleteTrashedByOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to empty trash: %w", err)
	}

	s.logger.InfoWithContextf(ctx, "[File] Emptied trash for user %s, %d entries deleted", ownerID, deleted)
	return deleted, nil
}

func (s *FileService) loadOwned(fileID uuid.UUID, ownerID string) (*entity.File, error) {
	file, err := s.repo.FindByIDAndOwner(fileID, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, fileID)
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return file, nil
}

// checkParentFolder enforces the creation-time hierarchy invariant: a parent
// reference must point at an existing folder of the same owner.
func (s *FileService) checkParentFolder(ownerID string, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}

	parent, err := s.repo.FindByIDAndOwner(*parentID, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: parent folder %s", ErrNotFound, *parentID)
		}
		return fmt.Errorf("failed to check parent folder: %w", err)
	}
	if !parent.IsFolder {
		return fmt.Errorf("%w: parent %s is not a folder", ErrNotFound, *parentID)
	}
	return nil
}
