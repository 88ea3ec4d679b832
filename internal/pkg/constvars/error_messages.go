package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email",
	"min":            "must be at least %s",
	"max":            "maximum at %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lte":            "must be less than or equal to %s",
	"url":            "must be a valid URL",
	"datetime":       "must be a date in %s format",
	"not_blank":      "must not be blank",
	"specialization": "must be one of the supported specializations",
	"blood_group":    "must be a valid blood group",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gt":       true,
	"gte":      true,
	"lte":      true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "authentication required"
	ErrClientSessionInvalid                = "your session ended, please sign in again"
	ErrClientAccessDenied                  = "access denied"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"

	ErrClientPatientProfileNotFound = "patient profile not found"
	ErrClientDoctorProfileNotFound  = "doctor profile not found"
	ErrClientReviewRequestNotFound  = "review request not found"
	ErrClientAppointmentNotFound    = "appointment not found"

	ErrClientInvalidStatus                = "invalid status"
	ErrClientInvalidDate                  = "invalid date, expected %s"
	ErrClientInvalidID                    = "invalid %s"
	ErrClientApproveBySchedulingOnly      = "approve a review request by scheduling an appointment"
	ErrClientReviewRequestAlreadyApproved = "review request is already approved"
	ErrClientReviewRequestRejected        = "a rejected review request cannot be scheduled"
	ErrClientReviewRequestAlreadyRejected = "review request is already rejected"
	ErrClientReviewRequestBeingProcessed  = "review request is already being processed"
	ErrClientAppointmentStatusTransition  = "appointment cannot move from %s to %s"
	ErrClientCallRoomNotYetAvailable      = "Call room is not yet available. Please join 15 minutes before scheduled time."
	ErrClientAppointmentEnded             = "This appointment has ended."
	ErrClientAppointmentNotJoinable       = "This appointment is %s and cannot be joined."
	ErrClientVideoRoomUnavailable         = "failed to create video call room, please try again"

	ErrClientFileTooLarge        = "File too large. Maximum size is 10MB per file."
	ErrClientTooManyFiles        = "Too many files. Maximum is 5 files per upload."
	ErrClientInvalidFileType     = "Only PDF, images, and document files are allowed for medical records!"
	ErrClientUnexpectedFileField = "Unexpected file field."
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevURLParamValidationFailed = "url param %s failed validation"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevMissingAuthenticatedUser = "authenticated user missing from context"
	ErrDevRequestBodyTooLarge      = "request body exceeded the configured limit"

	ErrDevAuthTokenMissing          = "authorization bearer token missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token invalid or expired"
	ErrDevAuthPublicKeyInvalid      = "clerk public key cannot be parsed"
	ErrDevAuthUnauthorizedParty     = "token authorized party is not allowed"
	ErrDevAuthSubjectMissing        = "token subject claim missing"
	ErrDevCallerNotOwner            = "caller %s is not the owner of %s"

	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCountDocuments   = "failed to count documents"
	ErrDevDBFailedToAggregate        = "failed to run aggregation pipeline"
	ErrDevDBFailedToCreateIndexes    = "failed to create indexes"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"
	ErrDevDBDuplicateKey             = "duplicate key on unique index"

	ErrDevRedisGetData     = "failed to get data from redis"
	ErrDevRedisSetData     = "failed to set data to redis"
	ErrDevRedisDeleteData  = "failed to delete data from redis"
	ErrDevRedisIncrement   = "failed to increment redis value"
	ErrDevRedisSetNX       = "failed to set redis key if not exists"
	ErrDevRedisExpire      = "failed to set redis key expiration"
	ErrDevRedisUnlock      = "failed to release redis lock"
	ErrDevRedisLockNotHeld = "redis lock %s is held by another owner"

	ErrDevStorageCreateDirectory = "failed to create upload directory %s"
	ErrDevStorageWriteFile       = "failed to write uploaded file %s"
	ErrDevStorageDeleteFile      = "failed to delete stored file %s"
	ErrDevMinioCreateObject      = "failed to create object in bucket %s"
	ErrDevMinioRemoveObject      = "failed to remove object from bucket %s"
	ErrDevUploadFileTooLarge     = "uploaded file %s exceeds %d bytes"
	ErrDevUploadTooManyFiles     = "upload has %d files, maximum is %d"
	ErrDevUploadInvalidMIME      = "uploaded file %s has disallowed content type %s"
	ErrDevUploadUnexpectedField  = "multipart file field %s is not accepted"

	ErrDevCreateHTTPRequest = "failed to create outbound http request"
	ErrDevSendHTTPRequest   = "failed to send outbound http request"
	ErrDevDailyCreateRoom   = "daily.co create room failed with status %d: %s"
	ErrDevDailyDeleteRoom   = "daily.co delete room failed with status %d: %s"
	ErrDevDailyDecodeRoom   = "cannot decode daily.co room response"
	ErrDevDailyRateLimited  = "daily.co local rate limiter wait failed"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	ErrDevReviewRequestNotClaimable   = "review request %s is not in a claimable status"
	ErrDevReviewRequestLockHeld       = "review request %s approval lock is held"
	ErrDevReviewRequestApproveByPatch = "approved status is only reachable through appointment scheduling"
	ErrDevReviewRequestTerminal       = "review request %s is approved and terminal"
	ErrDevReviewRequestRejected       = "review request %s is rejected and terminal"
	ErrDevAppointmentTransition       = "appointment %s transition %s -> %s not allowed"
	ErrDevJoinWindowTooEarly          = "join window opens at %s"
	ErrDevJoinWindowEnded             = "join window closed at %s"
	ErrDevAppointmentNotJoinable      = "appointment %s has status %s"
	ErrDevRateLimitExceeded           = "rate limit exceeded for %s"
)
