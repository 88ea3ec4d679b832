package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingCallerIDKey          = "caller_id"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingErrorTypeKey         = "error_type"
	LoggingPatientIDKey         = "patient_id"
	LoggingDoctorIDKey          = "doctor_id"
	LoggingReviewRequestIDKey   = "review_request_id"
	LoggingAppointmentIDKey     = "appointment_id"
	LoggingStatusKey            = "status"
	LoggingPreviousStatusKey    = "previous_status"
	LoggingRoomNameKey          = "room_name"
	LoggingFileNameKey          = "file_name"
	LoggingFileSizeKey          = "file_size"
	LoggingCountKey             = "count"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingLockExpectedValueKey = "lock_expected_value"
	LoggingEventTypeKey         = "event_type"
	LoggingQueueKey             = "queue"
	LoggingJoinStateKey         = "join_state"
)
