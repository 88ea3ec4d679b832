package utils

import (
	"fmt"
	"medtour-service/internal/pkg/constvars"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateMedicalReportFileName keeps the original extension and prefixes the
// upload time, e.g. medicalReports-1718000000000-3f2a9c1b.pdf.
func GenerateMedicalReportFileName(originalName string, now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s%s",
		constvars.MedicalReportFileNamePrefix,
		now.UnixMilli(),
		suffix,
		strings.ToLower(filepath.Ext(originalName)),
	)
}

func GenerateDailyRoomName(appointmentID string, now time.Time) string {
	return fmt.Sprintf(constvars.DailyRoomNameFormat, appointmentID, now.UnixMilli())
}
