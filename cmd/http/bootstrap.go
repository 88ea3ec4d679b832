package main

import (
	"context"
	"fmt"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/app/delivery/http/routers"
	"medtour-service/internal/app/services/core/appointments"
	"medtour-service/internal/app/services/core/doctors"
	"medtour-service/internal/app/services/core/patients"
	"medtour-service/internal/app/services/core/reminders"
	reviewRequests "medtour-service/internal/app/services/core/review_requests"
	"medtour-service/internal/app/services/shared/clerk"
	"medtour-service/internal/app/services/shared/dailyco"
	"medtour-service/internal/app/services/shared/locker"
	"medtour-service/internal/app/services/shared/notifier"
	"medtour-service/internal/app/services/shared/ratelimiter"
	"medtour-service/internal/app/services/shared/redis"
	"medtour-service/internal/app/services/shared/storage"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type indexedRepository interface {
	EnsureIndexes(ctx context.Context) error
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	clk := clock.New()

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, clk, bootstrap.Logger)

	// Delegates
	identityVerifier, err := clerk.NewClerkVerifier(bootstrap.InternalConfig, clk, bootstrap.Logger)
	if err != nil {
		return fmt.Errorf("clerk verifier: %w", err)
	}
	videoRoomProvider := dailyco.NewDailyClient(bootstrap.InternalConfig, clk, bootstrap.Logger)
	notificationPublisher, err := notifier.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.RabbitMQ.NotificationQueue)
	if err != nil {
		return fmt.Errorf("notification publisher: %w", err)
	}

	var medicalReportStorage contracts.MedicalReportStorage
	switch bootstrap.InternalConfig.App.StorageDriver {
	case constvars.StorageDriverMinio:
		medicalReportStorage = storage.NewMinioStorage(bootstrap.Minio, bootstrap.InternalConfig.Minio.BucketName, bootstrap.Logger)
	default:
		medicalReportStorage = storage.NewLocalStorage(bootstrap.InternalConfig.Upload.Dir, bootstrap.Logger)
	}

	// Repositories
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB)
	doctorProfileRepository := doctors.NewDoctorProfileMongoRepository(bootstrap.MongoDB)
	reviewRequestRepository := reviewRequests.NewReviewRequestMongoRepository(bootstrap.MongoDB)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)

	// Usecases
	patientUsecase := patients.NewPatientUsecase(
		patientRepository,
		doctorProfileRepository,
		reviewRequestRepository,
		appointmentRepository,
		medicalReportStorage,
		clk,
		bootstrap.Logger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorProfileRepository, clk, bootstrap.Logger)
	reviewRequestUsecase := reviewRequests.NewReviewRequestUsecase(
		reviewRequestRepository,
		resourceLimiter,
		notificationPublisher,
		bootstrap.InternalConfig,
		clk,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		reviewRequestRepository,
		doctorProfileRepository,
		lockerService,
		videoRoomProvider,
		notificationPublisher,
		clk,
		bootstrap.Logger,
	)

	// Reminder worker
	if bootstrap.InternalConfig.Reminder.Enabled {
		reminderUsecase := reminders.NewAppointmentReminderUsecase(
			appointmentRepository,
			notificationPublisher,
			bootstrap.InternalConfig,
			clk,
			bootstrap.Logger,
		)
		worker := reminders.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, reminderUsecase)
		worker.Start(context.Background())
		bootstrap.ReminderWorkerStop = worker.Stop
	}

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, identityVerifier, bootstrap.InternalConfig)
	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		controllers.NewPatientController(bootstrap.Logger, patientUsecase),
		controllers.NewDoctorController(bootstrap.Logger, doctorUsecase),
		controllers.NewReviewRequestController(bootstrap.Logger, reviewRequestUsecase),
		controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase),
	)

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	repositories := map[string]indexedRepository{
		constvars.MongoCollectionPatients:       patients.NewPatientMongoRepository(db),
		constvars.MongoCollectionDoctorProfiles: doctors.NewDoctorProfileMongoRepository(db),
		constvars.MongoCollectionReviewRequests: reviewRequests.NewReviewRequestMongoRepository(db),
		constvars.MongoCollectionAppointments:   appointments.NewAppointmentMongoRepository(db),
	}

	for name, repository := range repositories {
		if err := repository.EnsureIndexes(ctx); err != nil {
			logger.Error("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
			return err
		}
		logger.Info("Indexes ensured", zap.String("collection", name))
	}
	return nil
}
