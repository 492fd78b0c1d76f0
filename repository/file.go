package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qbnguyen/cloudlet-service/entity"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(file *entity.File) error {
	return r.db.Create(file).Error
}

func (r *FileRepository) FindByIDAndOwner(id uuid.UUID, ownerID string) (*entity.File, error) {
	var file entity.File
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// FindByOwnerAndParent lists entries under the given parent. A nil parentID
// selects root-level entries.
func (r *FileRepository) FindByOwnerAndParent(ownerID string, parentID *uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	q := r.db.Where("owner_id = ?", ownerID)
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	} else {
		q = q.Where("parent_id IS NULL")
	}
	err := q.Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *FileRepository) Save(file *entity.File) error {
	return r.db.Save(file).Error
}

func (r *FileRepository) DeleteByIDAndOwner(id uuid.UUID, ownerID string) error {
	return r.db.Delete(&entity.File{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

func (r *FileRepository) FindTrashedByOwner(ownerID string) ([]entity.File, error) {
	var files []entity.File
	err := r.db.Where("owner_id = ? AND is_trash = ?", ownerID, true).Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteTrashedByOwner removes every trashed row for the owner in one
// statement and returns the number deleted.
func (r *FileRepository) DeleteTrashedByOwner(ownerID string) (int64, error) {
	res := r.db.Delete(&entity.File{}, "owner_id = ? AND is_trash = ?", ownerID, true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// IsNotFound reports whether err is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
