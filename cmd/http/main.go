package main

import (
	"context"
	"errors"
	"log"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/drivers/database"
	"medtour-service/internal/app/drivers/logger"
	"medtour-service/internal/app/drivers/messaging"
	"medtour-service/internal/app/drivers/storage"
	"medtour-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medtour",
		Short: "MedTour telemedicine scheduling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(ensureIndexesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the reminder worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func ensureIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the MongoDB indexes used by the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnsureIndexes(cmd.Context())
		},
	}
}

func loadConfig() (*config.DriverConfig, *config.InternalConfig, error) {
	driverConfig := config.NewDriverConfig()
	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		return nil, nil, err
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		return nil, nil, err
	}
	time.Local = location

	return driverConfig, internalConfig, nil
}

func runServer() error {
	driverConfig, internalConfig, err := loadConfig()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		return err
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)

	var minioClient *minio.Client
	if internalConfig.App.StorageDriver == constvars.StorageDriverMinio {
		minioClient = storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	}

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), time.Minute)
	err = ensureIndexes(indexCtx, mongoDB, zapLogger)
	cancelIndexes()
	if err != nil {
		return err
	}

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		zapLogger.Error("Failed to bootstrap the app", zap.Error(err))
		return err
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("Server started", zap.String("address", internalConfig.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case <-c:
	case err := <-serverErr:
		zapLogger.Error("Server failed to start", zap.Error(err))
		return err
	}

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error releasing resources: %v", err)
		return err
	}

	log.Println("Server exiting")
	return nil
}

func runEnsureIndexes(ctx context.Context) error {
	driverConfig, internalConfig, err := loadConfig()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		return err
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Client().Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	return ensureIndexes(ctx, mongoDB, zapLogger)
}
