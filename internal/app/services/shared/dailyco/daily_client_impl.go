package dailyco

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type roomProperties struct {
	NotBefore         int64 `json:"nbf"`
	Expiry            int64 `json:"exp"`
	MaxParticipants   int   `json:"max_participants"`
	EnableScreenshare bool  `json:"enable_screenshare"`
	EnableChat        bool  `json:"enable_chat"`
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Properties roomProperties `json:"properties"`
}

type room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type dailyClient struct {
	BaseUrl    string
	ApiKey     string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Clock      clock.Clock
	Log        *zap.Logger
}

func NewDailyClient(internalConfig *config.InternalConfig, clk clock.Clock, logger *zap.Logger) contracts.VideoRoomProvider {
	return &dailyClient{
		BaseUrl: strings.TrimRight(internalConfig.Daily.APIBaseURL, "/"),
		ApiKey:  internalConfig.Daily.APIKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Daily.RequestTimeoutInSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(internalConfig.Daily.RequestsPerSecond), internalConfig.Daily.Burst),
		Clock:   clk,
		Log:     logger,
	}
}

// CreateRoom opens a two person room that only admits participants between the
// scheduled start and the end of the call.
func (c *dailyClient) CreateRoom(ctx context.Context, appointmentID string, scheduledDate time.Time, duration time.Duration) (*contracts.VideoRoom, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("dailyClient.CreateRoom called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Error("dailyClient.CreateRoom local rate limit wait failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, exceptions.ErrDailyRateLimited(err)
	}

	payload := createRoomRequest{
		Name: utils.GenerateDailyRoomName(appointmentID, c.Clock.Now()),
		Properties: roomProperties{
			NotBefore:         scheduledDate.Add(-constvars.AppointmentJoinLeadTime).Unix(),
			Expiry:            scheduledDate.Add(duration).Unix(),
			MaxParticipants:   constvars.DailyRoomMaxParticipants,
			EnableScreenshare: true,
			EnableChat:        true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl+constvars.DailyRoomsPath, bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("dailyClient.CreateRoom error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrDailyDecodeRoom(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		detail := errorDetail(respBody)
		c.Log.Error("dailyClient.CreateRoom unexpected response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String("detail", detail),
		)
		return nil, exceptions.ErrDailyCreateRoom(fmt.Errorf("daily responded %d", resp.StatusCode), resp.StatusCode, detail)
	}

	var created room
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, exceptions.ErrDailyDecodeRoom(err)
	}
	if created.URL == "" || created.Name == "" {
		return nil, exceptions.ErrDailyDecodeRoom(errors.New("room response is missing url or name"))
	}

	c.Log.Info("dailyClient.CreateRoom succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoomNameKey, created.Name),
	)
	return &contracts.VideoRoom{URL: created.URL, Name: created.Name}, nil
}

// DeleteRoom treats an already missing room as deleted.
func (c *dailyClient) DeleteRoom(ctx context.Context, roomName string) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("dailyClient.DeleteRoom called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoomNameKey, roomName),
	)

	if err := c.Limiter.Wait(ctx); err != nil {
		return exceptions.ErrDailyRateLimited(err)
	}

	endpoint := fmt.Sprintf("%s%s/%s", c.BaseUrl, constvars.DailyRoomsPath, url.PathEscape(roomName))
	req, err := http.NewRequestWithContext(ctx, constvars.MethodDelete, endpoint, nil)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		return nil
	}
	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		detail := errorDetail(respBody)
		c.Log.Error("dailyClient.DeleteRoom unexpected response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String("detail", detail),
		)
		return exceptions.ErrDailyDeleteRoom(fmt.Errorf("daily responded %d", resp.StatusCode), resp.StatusCode, detail)
	}
	return nil
}

func (c *dailyClient) setHeaders(req *http.Request) {
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+c.ApiKey)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
}

// errorDetail pulls the error and info fields out of a Daily error body.
func errorDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	result := gjson.GetManyBytes(body, "error", "info")
	parts := make([]string, 0, 2)
	for _, r := range result {
		if r.Exists() && r.String() != "" {
			parts = append(parts, r.String())
		}
	}
	return strings.Join(parts, ": ")
}
