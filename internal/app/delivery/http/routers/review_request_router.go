package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachReviewRequestRoutes(router chi.Router, reviewRequestController *controllers.ReviewRequestController) {
	router.Post("/create", reviewRequestController.Create)
	router.Get("/doctor/{doctorId}", reviewRequestController.ListForDoctor)
	router.Get("/patient/{patientId}", reviewRequestController.ListForPatient)
	router.Get("/stats/{doctorId}", reviewRequestController.Stats)
	router.Patch("/{id}/status", reviewRequestController.UpdateStatus)
	router.Get("/{id}", reviewRequestController.FindByID)
}
