package contracts

import (
	"context"
	"io"
)

// MedicalReportStorage persists uploaded medical documents under a per-user prefix.
type MedicalReportStorage interface {
	Save(ctx context.Context, userID, fileName, contentType string, size int64, content io.Reader) (string, error)
	Delete(ctx context.Context, filePath string) error
}
