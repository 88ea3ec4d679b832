package routers

import (
	"medtour-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Post("/profile", patientController.UpsertProfile)
	router.Get("/profile/{clerkUserId}", patientController.FindProfile)
	router.Get("/profile-status/{clerkUserId}", patientController.FindProfileStatus)
	router.Get("/appointments/{userId}", patientController.ListAppointments)
	router.Get("/upcoming-calls/{userId}", patientController.ListUpcomingCalls)
	router.Get("/doctor/{doctorId}", patientController.FindDoctorPublicProfile)
}
