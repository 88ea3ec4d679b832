package routers

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	patientController *controllers.PatientController,
	doctorController *controllers.DoctorController,
	reviewRequestController *controllers.ReviewRequestController,
	appointmentController *controllers.AppointmentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   utils.SplitCommaSeparated(internalConfig.App.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RateLimitByIP())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ServiceHealthyMessage, map[string]string{
			"version": internalConfig.App.Version,
		})
	})

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Use(middlewares.BodyLimit)
		r.Use(middlewares.Authenticate)

		r.Route("/patient", func(r chi.Router) {
			attachPatientRoutes(r, patientController)
		})

		r.Route("/doctor", func(r chi.Router) {
			attachDoctorRoutes(r, doctorController)
		})

		r.Route("/review-requests", func(r chi.Router) {
			attachReviewRequestRoutes(r, reviewRequestController)
		})

		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, appointmentController)
		})
	})
}
