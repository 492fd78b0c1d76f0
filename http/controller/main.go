package controller

import (
	"github.com/qbnguyen/cloudlet-service/config"
	"github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/repository"
	"github.com/qbnguyen/cloudlet-service/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Files      *service.FileService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	files := service.NewFileService(repo.FileRepo, infra.Store, infra.Produce.CleanupService, infra.Logger)

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Files:      files,
	}
}
