package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qbnguyen/cloudlet-service/entity"
	"github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/infra/produce"
)

// fakeRepo is an in-memory FileRepository.
type fakeRepo struct {
	mu                 sync.Mutex
	files              map[uuid.UUID]entity.File
	deleteTrashedCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: make(map[uuid.UUID]entity.File)}
}

func (r *fakeRepo) Create(file *entity.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.ID] = *file
	return nil
}

func (r *fakeRepo) FindByIDAndOwner(id uuid.UUID, ownerID string) (*entity.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := f
	return &copied, nil
}

func (r *fakeRepo) FindByOwnerAndParent(ownerID string, parentID *uuid.UUID) ([]entity.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.File
	for _, f := range r.files {
		if f.OwnerID != ownerID {
			continue
		}
		switch {
		case parentID == nil && f.ParentID == nil:
			out = append(out, f)
		case parentID != nil && f.ParentID != nil && *f.ParentID == *parentID:
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeRepo) Save(file *entity.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[file.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.files[file.ID] = *file
	return nil
}

func (r *fakeRepo) DeleteByIDAndOwner(id uuid.UUID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if ok && f.OwnerID == ownerID {
		delete(r.files, id)
	}
	return nil
}

func (r *fakeRepo) FindTrashedByOwner(ownerID string) ([]entity.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.File
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.IsTrash {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteTrashedByOwner(ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteTrashedCalls++
	var deleted int64
	for id, f := range r.files {
		if f.OwnerID == ownerID && f.IsTrash {
			delete(r.files, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRepo) get(id uuid.UUID) (entity.File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	return f, ok
}

// fakeStore is an in-memory ObjectStore. searchResults maps a queried name
// onto the store's own name for it; names absent from the map search empty.
type fakeStore struct {
	mu            sync.Mutex
	searchResults map[string]string
	searchErr     error
	deleteErr     map[string]error
	deleted       []string
	searched      []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		searchResults: make(map[string]string),
		deleteErr:     make(map[string]error),
	}
}

func (s *fakeStore) Upload(ctx context.Context, data io.Reader, size int64, filename, contentType, folder string) (*infra.UploadResult, error) {
	return &infra.UploadResult{
		Name:     filename,
		FilePath: folder + "/" + filename,
		URL:      "https://store.example/" + folder + "/" + filename,
		FileType: contentType,
		Size:     size,
	}, nil
}

func (s *fakeStore) Search(ctx context.Context, name string, limit int) ([]infra.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searched = append(s.searched, name)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if storeName, ok := s.searchResults[name]; ok {
		return []infra.StoredObject{{Name: storeName, Path: storeName}}, nil
	}
	return nil, nil
}

func (s *fakeStore) DeleteByName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.deleteErr[name]; ok {
		return err
	}
	s.deleted = append(s.deleted, name)
	return nil
}

func (s *fakeStore) deletedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.deleted))
	copy(out, s.deleted)
	return out
}

// fakeCleanupQueue records retry jobs instead of publishing them.
type fakeCleanupQueue struct {
	mu   sync.Mutex
	jobs []produce.CleanupRetryMessage
}

func (q *fakeCleanupQueue) PublishCleanupRetry(ctx context.Context, msg produce.CleanupRetryMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, msg)
	return nil
}

func (q *fakeCleanupQueue) published() []produce.CleanupRetryMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]produce.CleanupRetryMessage, len(q.jobs))
	copy(out, q.jobs)
	return out
}

func newTestService() (*FileService, *fakeRepo, *fakeStore, *fakeCleanupQueue) {
	repo := newFakeRepo()
	store := newFakeStore()
	queue := &fakeCleanupQueue{}
	logger := infra.NewTestLogger(slog.NewTextHandler(io.Discard, nil))
	return NewFileService(repo, store, queue, logger), repo, store, queue
}
