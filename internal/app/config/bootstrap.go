package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Database
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// ReminderWorkerStop is called during Shutdown to drain the reminder worker
	ReminderWorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.ReminderWorkerStop != nil {
		b.ReminderWorkerStop()
		log.Println("Successfully stopped reminder worker")
	}

	if b.MongoDB != nil {
		err := b.MongoDB.Client().Disconnect(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully disconnecting MongoDB")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if b.RabbitMQ != nil {
		err = b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	// stdout sync fails with EINVAL on some terminals
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
