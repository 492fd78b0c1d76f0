package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/qbnguyen/cloudlet-service/entity"
	"github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/infra/produce"
)

// Business errors surfaced to the transport layer. Anything else coming out
// of the service is an infrastructure failure and maps to a generic 500.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrValidation = errors.New("invalid request")
	ErrForbidden  = errors.New("forbidden")
)

// FileRepository is the persistence surface the service needs. Satisfied by
// repository.FileRepository.
type FileRepository interface {
	Create(file *entity.File) error
	FindByIDAndOwner(id uuid.UUID, ownerID string) (*entity.File, error)
	FindByOwnerAndParent(ownerID string, parentID *uuid.UUID) ([]entity.File, error)
	Save(file *entity.File) error
	DeleteByIDAndOwner(id uuid.UUID, ownerID string) error
	FindTrashedByOwner(ownerID string) ([]entity.File, error)
	DeleteTrashedByOwner(ownerID string) (int64, error)
}

// CleanupPublisher enqueues retry jobs for object deletions that failed on
// the request path. Satisfied by produce.CleanupProduceService.
type CleanupPublisher interface {
	PublishCleanupRetry(ctx context.Context, msg produce.CleanupRetryMessage) error
}

// FileService owns the virtual filesystem hierarchy and the
// star/trash/delete lifecycle over it. All collaborators are injected so the
// service runs against substitutes in tests.
type FileService struct {
	repo    FileRepository
	store   infra.ObjectStore
	cleanup CleanupPublisher
	logger  *infra.LoggerClient
}

func NewFileService(repo FileRepository, store infra.ObjectStore, cleanup CleanupPublisher, logger *infra.LoggerClient) *FileService {
	if repo == nil {
		panic("FileService requires a repository")
	}
	if logger == nil {
		panic("FileService requires a logger")
	}
	return &FileService{
		repo:    repo,
		store:   store,
		cleanup: cleanup,
		logger:  logger,
	}
}
