package utils

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
	"strings"
)

// BuildPaginationRequest reads page and page_size, also accepting the legacy
// limit parameter, and clamps them to sane bounds.
func BuildPaginationRequest(r *http.Request, defaultPageSize int) requests.Pagination {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get(constvars.QueryParamPage))
	if err != nil || page < 1 {
		page = constvars.AppDefaultPage
	}

	rawPageSize := query.Get(constvars.QueryParamPageSize)
	if rawPageSize == "" {
		rawPageSize = query.Get(constvars.QueryParamLimit)
	}
	pageSize, err := strconv.Atoi(rawPageSize)
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppMaxPageSize
	}

	return requests.Pagination{Page: page, PageSize: pageSize}
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func GetAuthenticatedUser(ctx context.Context) (*models.AuthenticatedUser, bool) {
	user, ok := ctx.Value(constvars.CONTEXT_AUTHENTICATED_USER_KEY).(*models.AuthenticatedUser)
	if !ok || user == nil || user.UserID == "" {
		return nil, false
	}
	return user, true
}

func ExtractBearerToken(header string) string {
	if len(header) < len(constvars.AuthorizationBearerPrefix) ||
		!strings.EqualFold(header[:len(constvars.AuthorizationBearerPrefix)], constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(constvars.AuthorizationBearerPrefix):])
}
