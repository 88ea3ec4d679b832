package mocks

import (
	"context"
	"io"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"time"

	"github.com/stretchr/testify/mock"
)

type RedisRepository struct {
	mock.Mock
}

func (m *RedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int64, error) {
	args := m.Called(ctx, key, exp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RedisRepository) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

type LockerService struct {
	mock.Mock
}

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type ResourceLimiter struct {
	mock.Mock
}

func (m *ResourceLimiter) Allow(ctx context.Context, group, resource string, quota int, window time.Duration) (bool, time.Duration, error) {
	args := m.Called(ctx, group, resource, quota, window)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}

type MedicalReportStorage struct {
	mock.Mock
}

func (m *MedicalReportStorage) Save(ctx context.Context, userID, fileName, contentType string, size int64, content io.Reader) (string, error) {
	args := m.Called(ctx, userID, fileName, contentType, size, content)
	return args.String(0), args.Error(1)
}

func (m *MedicalReportStorage) Delete(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

type VideoRoomProvider struct {
	mock.Mock
}

func (m *VideoRoomProvider) CreateRoom(ctx context.Context, appointmentID string, scheduledDate time.Time, duration time.Duration) (*contracts.VideoRoom, error) {
	args := m.Called(ctx, appointmentID, scheduledDate, duration)
	room, _ := args.Get(0).(*contracts.VideoRoom)
	return room, args.Error(1)
}

func (m *VideoRoomProvider) DeleteRoom(ctx context.Context, roomName string) error {
	args := m.Called(ctx, roomName)
	return args.Error(0)
}

type IdentityVerifier struct {
	mock.Mock
}

func (m *IdentityVerifier) Verify(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.AuthenticatedUser)
	return user, args.Error(1)
}

type NotificationPublisher struct {
	mock.Mock
}

func (m *NotificationPublisher) Publish(ctx context.Context, event contracts.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
