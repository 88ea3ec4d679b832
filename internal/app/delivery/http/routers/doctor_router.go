package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Post("/profile", doctorController.UpsertProfile)
	router.Get("/profile", doctorController.FindProfile)
	router.Get("/all", doctorController.ListDoctors)
}
