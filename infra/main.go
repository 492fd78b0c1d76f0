package infra

import (
	"github.com/qbnguyen/cloudlet-service/config"
	"github.com/qbnguyen/cloudlet-service/infra/produce"
)

type Infra struct {
	Redis    *RedisClient
	Postgres *PostgresClient
	Logger   *LoggerClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce

	// Store is the active object-store backend, selected by STORE_BACKEND.
	Store ObjectStore
	Media *MediaService
	Minio *MinioStore
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	instance := &Infra{
		Redis:    redis,
		Postgres: postgres,
		Logger:   logger,
		RabbitMQ: rabbitMQ,
		Produce:  produceService,
	}

	switch cfg.EnvConfig.Store.Backend {
	case "minio":
		minioStore := InitMinioStore(cfg.EnvConfig)
		instance.Minio = minioStore
		instance.Store = minioStore
	default:
		mediaService := InitMediaService(cfg.EnvConfig)
		instance.Media = mediaService
		instance.Store = mediaService
	}

	infraInstance = instance
	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
