package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/qbnguyen/cloudlet-service/config"
	"github.com/qbnguyen/cloudlet-service/http/controller"
	routes "github.com/qbnguyen/cloudlet-service/http/route"
	infraPkg "github.com/qbnguyen/cloudlet-service/infra"
	"github.com/qbnguyen/cloudlet-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
