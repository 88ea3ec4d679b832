package routers

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/app/delivery/http/controllers"
	"medtour-service/internal/app/delivery/http/middlewares"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type testRouter struct {
	handler              http.Handler
	patientUsecase       *mocks.PatientUsecase
	doctorUsecase        *mocks.DoctorUsecase
	reviewRequestUsecase *mocks.ReviewRequestUsecase
	appointmentUsecase   *mocks.AppointmentUsecase
}

func newTestRouter() *testRouter {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                    "v1.0",
			EndpointPrefix:             "/api",
			CORSAllowedOrigins:         "http://localhost:3000",
			MaxRequests:                100,
			RequestBodyLimitInMegabyte: 1,
		},
	}

	verifier := new(mocks.IdentityVerifier)
	verifier.On("Verify", mock.Anything, "doctor-token").Return(&models.AuthenticatedUser{UserID: "user_doctor"}, nil)

	tr := &testRouter{
		patientUsecase:       new(mocks.PatientUsecase),
		doctorUsecase:        new(mocks.DoctorUsecase),
		reviewRequestUsecase: new(mocks.ReviewRequestUsecase),
		appointmentUsecase:   new(mocks.AppointmentUsecase),
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, verifier, internalConfig),
		&controllers.PatientController{Log: logger, PatientUsecase: tr.patientUsecase},
		&controllers.DoctorController{Log: logger, DoctorUsecase: tr.doctorUsecase},
		&controllers.ReviewRequestController{Log: logger, ReviewRequestUsecase: tr.reviewRequestUsecase},
		&controllers.AppointmentController{Log: logger, AppointmentUsecase: tr.appointmentUsecase},
	)
	tr.handler = router
	return tr
}

func (tr *testRouter) serve(method, target, body string, authenticated bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if authenticated {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer doctor-token")
	}

	rr := httptest.NewRecorder()
	tr.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthIsPublic(t *testing.T) {
	tr := newTestRouter()

	rr := tr.serve(http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	assert.Equal(t, "v1.0", gjson.Get(rr.Body.String(), "data.version").String())
}

func TestAPIRoutesRequireToken(t *testing.T) {
	tr := newTestRouter()

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/doctor/all"},
		{http.MethodGet, "/api/patient/doctor/user_doctor"},
		{http.MethodGet, "/api/review-requests/stats/user_doctor"},
		{http.MethodGet, "/api/appointments/665f1c2e9b1e8a0012345678/join"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			rr := tr.serve(route.method, route.target, "", false)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAppointmentDoctorRoutes(t *testing.T) {
	tr := newTestRouter()

	tr.appointmentUsecase.On("StatsForDoctor", mock.Anything, "user_doctor", "user_doctor").
		Return(&models.AppointmentStats{Total: 3, Scheduled: 1, Completed: 2}, nil).Once()
	tr.appointmentUsecase.On("ListForDoctor", mock.Anything, mock.MatchedBy(func(request *requests.ListDoctorAppointments) bool {
		return request.DoctorID == "user_doctor" && request.Date == "2026-11-02"
	})).Return(&responses.AppointmentList{Appointments: []models.Appointment{}}, nil).Once()
	tr.appointmentUsecase.On("PatientsCountForDoctor", mock.Anything, "user_doctor", "user_doctor").
		Return(&responses.PatientsCount{Count: 4}, nil).Once()

	stats := tr.serve(http.MethodGet, "/api/appointments/doctor/user_doctor/stats", "", true)
	assert.Equal(t, http.StatusOK, stats.Code)
	assert.Equal(t, int64(3), gjson.Get(stats.Body.String(), "data.total").Int())

	list := tr.serve(http.MethodGet, "/api/appointments/doctor/user_doctor?date=2026-11-02", "", true)
	assert.Equal(t, http.StatusOK, list.Code)

	count := tr.serve(http.MethodGet, "/api/appointments/doctor/user_doctor/patients-count", "", true)
	assert.Equal(t, http.StatusOK, count.Code)
	assert.Equal(t, int64(4), gjson.Get(count.Body.String(), "data.count").Int())

	tr.appointmentUsecase.AssertExpectations(t)
}

func TestReviewRequestStatusRoute(t *testing.T) {
	tr := newTestRouter()

	tr.reviewRequestUsecase.On("UpdateStatus", mock.Anything, &requests.UpdateReviewRequestStatus{
		CallerID:        "user_doctor",
		ReviewRequestID: "665f1c2e9b1e8a0012345678",
		Status:          constvars.ReviewRequestStatusReviewed,
		DoctorNotes:     "Needs imaging",
	}).Return(&models.ReviewRequest{Status: constvars.ReviewRequestStatusReviewed}, nil).Once()

	rr := tr.serve(http.MethodPatch, "/api/review-requests/665f1c2e9b1e8a0012345678/status", `{"status":"reviewed","doctorNotes":"Needs imaging"}`, true)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.ReviewRequestStatusReviewed, gjson.Get(rr.Body.String(), "data.status").String())
	tr.reviewRequestUsecase.AssertExpectations(t)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	tr := newTestRouter()

	rr := tr.serve(http.MethodGet, "/api/unknown", "", true)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
