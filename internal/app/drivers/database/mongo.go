package database

import (
	"context"
	"fmt"
	"log"
	"medtour-service/internal/app/config"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Database {
	connectionString := fmt.Sprintf("mongodb://%s:%s", driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)
	if driverConfig.MongoDB.Username != "" {
		connectionString = fmt.Sprintf(
			"mongodb://%s:%s@%s:%s",
			driverConfig.MongoDB.Username,
			driverConfig.MongoDB.Password,
			driverConfig.MongoDB.Host,
			driverConfig.MongoDB.Port,
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client.Database(driverConfig.MongoDB.DbName)
}
