package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEMultipartForm   = "multipart/form-data"
	MIMEOctetStream     = "application/octet-stream"
)

const (
	StatusOK                    = 200
	StatusCreated               = 201
	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusConflict              = 409
	StatusRequestEntityTooLarge = 413
	StatusTooManyRequests       = 429
	StatusInternalServerError   = 500
	StatusBadGateway            = 502
	StatusServiceUnavailable    = 503
	StatusGatewayTimeout        = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)

const (
	AuthorizationBearerPrefix = "Bearer "
)
