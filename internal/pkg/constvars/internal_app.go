package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_AUTHENTICATED_USER_KEY   ContextKey = "authenticated_user"
)

const (
	REQUEST_ID_PREFIX = "MDTR_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPage         = 1
	AppDefaultPageSize     = 10
	AppMaxPageSize         = 100
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

const (
	URLParamID            = "id"
	URLParamDoctorID      = "doctorId"
	URLParamPatientID     = "patientId"
	URLParamClerkUserID   = "clerkUserId"
	URLParamUserID        = "userId"
	URLParamAppointmentID = "appointmentId"
	URLParamRequestID     = "requestId"
)

const (
	QueryParamPage           = "page"
	QueryParamPageSize       = "page_size"
	QueryParamLimit          = "limit"
	QueryParamStatus         = "status"
	QueryParamDate           = "date"
	QueryParamSearch         = "search"
	QueryParamSpecialization = "specialization"
	QueryValueAll            = "all"
)

const (
	MongoCollectionPatients       = "patients"
	MongoCollectionDoctorProfiles = "doctorprofiles"
	MongoCollectionReviewRequests = "reviewrequests"
	MongoCollectionAppointments   = "appointments"
)

const (
	RedisKeyReviewRequestApproveLockFormat = "review_request:approve:%s"
	RedisKeyReminderLeaderLock             = "appointment_reminder:leader"
	RateLimiterGroupReviewRequestCreate    = "review-request-create"
	ReviewRequestApproveLockTTL            = 30 * time.Second
)

const (
	ResourcePatientProfile = "patient profile"
	ResourceReviewRequest  = "review request"
	ResourceAppointment    = "appointment"
	ResourceDoctorData     = "doctor data"
	ResourceClientAddress  = "client address"
)
