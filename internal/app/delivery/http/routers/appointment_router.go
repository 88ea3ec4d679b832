package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, appointmentController *controllers.AppointmentController) {
	router.Post("/create-from-request", appointmentController.CreateFromReviewRequest)
	router.Route("/doctor/{doctorId}", func(r chi.Router) {
		r.Get("/", appointmentController.ListForDoctor)
		r.Get("/upcoming", appointmentController.UpcomingForDoctor)
		r.Get("/stats", appointmentController.StatsForDoctor)
		r.Get("/patients-count", appointmentController.PatientsCountForDoctor)
		r.Get("/patients", appointmentController.PatientsForDoctor)
	})
	router.Get("/{id}", appointmentController.FindByID)
	router.Get("/{id}/join", appointmentController.Join)
	router.Patch("/{id}/status", appointmentController.UpdateStatus)
}
