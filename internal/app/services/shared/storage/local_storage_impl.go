package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type localStorage struct {
	BaseDir string
	Log     *zap.Logger
}

// NewLocalStorage keeps uploads on the local disk under baseDir/<userID>/.
func NewLocalStorage(baseDir string, logger *zap.Logger) contracts.MedicalReportStorage {
	return &localStorage{
		BaseDir: baseDir,
		Log:     logger,
	}
}

func (s *localStorage) Save(ctx context.Context, userID, fileName, contentType string, size int64, content io.Reader) (string, error) {
	requestID := utils.GetRequestID(ctx)

	userDir := filepath.Join(s.BaseDir, filepath.Base(userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		s.Log.Error("localStorage.Save error creating user directory",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrStorageCreateDirectory(err, userDir)
	}

	filePath := filepath.Join(userDir, filepath.Base(fileName))
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", exceptions.ErrStorageWriteFile(err, filePath)
	}
	defer file.Close()

	written, err := io.Copy(file, io.LimitReader(content, size))
	if err != nil {
		_ = os.Remove(filePath)
		s.Log.Error("localStorage.Save error writing file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, filePath),
			zap.Error(err),
		)
		return "", exceptions.ErrStorageWriteFile(err, filePath)
	}

	s.Log.Info("localStorage.Save stored file",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, filePath),
		zap.Int64(constvars.LoggingFileSizeKey, written),
	)
	return filepath.ToSlash(filePath), nil
}

func (s *localStorage) Delete(ctx context.Context, filePath string) error {
	err := os.Remove(filepath.FromSlash(filePath))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.Log.Error("localStorage.Delete error removing file",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingFileNameKey, filePath),
			zap.Error(err),
		)
		return exceptions.ErrStorageDeleteFile(err, filePath)
	}
	return nil
}
