package repository

import (
	"gorm.io/gorm"

	"github.com/qbnguyen/cloudlet-service/infra"
)

type Repository struct {
	FileRepo *FileRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		FileRepo: NewFileRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		FileRepo: NewFileRepository(tx),
	}
}
