package storage

import (
	"context"
	"io"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.MedicalReportStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

// Save writes the object under <userID>/<fileName> and returns <bucket>/<key>.
func (m *minioStorage) Save(ctx context.Context, userID, fileName, contentType string, size int64, content io.Reader) (string, error) {
	requestID := utils.GetRequestID(ctx)
	objectName := path.Join(userID, fileName)

	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.Log.Error("minioStorage.Save error calling MinioClient.PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioStorage.Save stored object",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, objectName),
		zap.Int64(constvars.LoggingFileSizeKey, size),
	)
	return path.Join(m.BucketName, objectName), nil
}

func (m *minioStorage) Delete(ctx context.Context, filePath string) error {
	objectName := strings.TrimPrefix(filePath, m.BucketName+"/")
	err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		m.Log.Error("minioStorage.Delete error calling MinioClient.RemoveObject",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingFileNameKey, objectName),
			zap.Error(err),
		)
		return exceptions.ErrMinioRemoveObject(err, m.BucketName)
	}
	return nil
}
