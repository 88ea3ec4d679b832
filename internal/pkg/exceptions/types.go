package exceptions

import (
	"fmt"
	"medtour-service/internal/pkg/constvars"
)

var (
	// Request
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotParseDate = func(err error, layout string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientInvalidDate, layout), constvars.ErrDevCannotParseDate)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientInvalidID, paramName), fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrInvalidStatus = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidStatus, constvars.ErrDevInvalidInput)
	}
	ErrRequestBodyTooLarge = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooLarge, constvars.ErrClientRequestBodyTooLarge, constvars.ErrDevRequestBodyTooLarge)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingAuthenticatedUser = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevMissingAuthenticatedUser)
	}
	ErrRateLimitExceeded = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevRateLimitExceeded, resource))
	}

	// Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}

	// Identity
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientSessionInvalid, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenUnauthorizedParty = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientSessionInvalid, constvars.ErrDevAuthUnauthorizedParty)
	}
	ErrTokenSubjectMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientSessionInvalid, constvars.ErrDevAuthSubjectMissing)
	}
	ErrForbidden = func(err error, callerID, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientAccessDenied, fmt.Sprintf(constvars.ErrDevCallerNotOwner, callerID, resource))
	}

	// Not found
	ErrPatientProfileNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientPatientProfileNotFound, constvars.ErrClientPatientProfileNotFound)
	}
	ErrDoctorProfileNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientDoctorProfileNotFound, constvars.ErrClientDoctorProfileNotFound)
	}
	ErrReviewRequestNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientReviewRequestNotFound, constvars.ErrClientReviewRequestNotFound)
	}
	ErrAppointmentNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientAppointmentNotFound, constvars.ErrClientAppointmentNotFound)
	}

	// Review request workflow
	ErrReviewRequestApproveByPatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientApproveBySchedulingOnly, constvars.ErrDevReviewRequestApproveByPatch)
	}
	ErrReviewRequestAlreadyApproved = func(err error, reviewRequestID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestAlreadyApproved, fmt.Sprintf(constvars.ErrDevReviewRequestTerminal, reviewRequestID))
	}
	ErrReviewRequestRejected = func(err error, reviewRequestID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestRejected, fmt.Sprintf(constvars.ErrDevReviewRequestNotClaimable, reviewRequestID))
	}
	ErrReviewRequestAlreadyRejected = func(err error, reviewRequestID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestAlreadyRejected, fmt.Sprintf(constvars.ErrDevReviewRequestRejected, reviewRequestID))
	}
	ErrReviewRequestNotClaimable = func(err error, reviewRequestID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestAlreadyApproved, fmt.Sprintf(constvars.ErrDevReviewRequestNotClaimable, reviewRequestID))
	}
	ErrReviewRequestBeingProcessed = func(err error, reviewRequestID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestBeingProcessed, fmt.Sprintf(constvars.ErrDevReviewRequestLockHeld, reviewRequestID))
	}

	// Appointment workflow
	ErrAppointmentStatusTransition = func(err error, appointmentID, from, to string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientAppointmentStatusTransition, from, to), fmt.Sprintf(constvars.ErrDevAppointmentTransition, appointmentID, from, to))
	}
	ErrCallRoomNotYetAvailable = func(err error, opensAt string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCallRoomNotYetAvailable, fmt.Sprintf(constvars.ErrDevJoinWindowTooEarly, opensAt))
	}
	ErrAppointmentEnded = func(err error, closedAt string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientAppointmentEnded, fmt.Sprintf(constvars.ErrDevJoinWindowEnded, closedAt))
	}
	ErrAppointmentNotJoinable = func(err error, appointmentID, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientAppointmentNotJoinable, status), fmt.Sprintf(constvars.ErrDevAppointmentNotJoinable, appointmentID, status))
	}

	// Uploads
	ErrUploadFileTooLarge = func(err error, fileName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientFileTooLarge, fmt.Sprintf(constvars.ErrDevUploadFileTooLarge, fileName, constvars.MedicalReportsMaxFileSize))
	}
	ErrUploadTooManyFiles = func(err error, count int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientTooManyFiles, fmt.Sprintf(constvars.ErrDevUploadTooManyFiles, count, constvars.MedicalReportsMaxFiles))
	}
	ErrUploadInvalidFileType = func(err error, fileName, contentType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidFileType, fmt.Sprintf(constvars.ErrDevUploadInvalidMIME, fileName, contentType))
	}
	ErrUploadUnexpectedField = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnexpectedFileField, fmt.Sprintf(constvars.ErrDevUploadUnexpectedField, field))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCountDocuments)
	}
	ErrMongoDBAggregate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToAggregate)
	}
	ErrMongoDBCreateIndexes = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateIndexes)
	}
	ErrMongoDBNotObjectID = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientInvalidID, paramName), constvars.ErrDevDBStringNotObjectID)
	}
	ErrMongoDBDuplicateKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientReviewRequestAlreadyApproved, constvars.ErrDevDBDuplicateKey)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrement)
	}
	ErrRedisSetNX = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetNX)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire)
	}
	ErrRedisUnlock = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisLockNotHeld, key))
	}

	// Storage
	ErrStorageCreateDirectory = func(err error, dir string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStorageCreateDirectory, dir))
	}
	ErrStorageWriteFile = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStorageWriteFile, path))
	}
	ErrStorageDeleteFile = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStorageDeleteFile, path))
	}
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioCreateObject, bucketName))
	}
	ErrMinioRemoveObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioRemoveObject, bucketName))
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientVideoRoomUnavailable, constvars.ErrDevSendHTTPRequest)
	}

	// Daily.co
	ErrDailyCreateRoom = func(err error, statusCode int, detail string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientVideoRoomUnavailable, fmt.Sprintf(constvars.ErrDevDailyCreateRoom, statusCode, detail))
	}
	ErrDailyDeleteRoom = func(err error, statusCode int, detail string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDailyDeleteRoom, statusCode, detail))
	}
	ErrDailyDecodeRoom = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientVideoRoomUnavailable, constvars.ErrDevDailyDecodeRoom)
	}
	ErrDailyRateLimited = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientVideoRoomUnavailable, constvars.ErrDevDailyRateLimited)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
)
