package patients

import (
	"errors"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// validateMedicalReports enforces the upload rules before anything is stored.
func validateMedicalReports(files []*multipart.FileHeader) error {
	if len(files) > constvars.MedicalReportsMaxFiles {
		return exceptions.ErrUploadTooManyFiles(errors.New("too many medical reports"), len(files))
	}

	for _, file := range files {
		if file.Size > constvars.MedicalReportsMaxFileSize {
			return exceptions.ErrUploadFileTooLarge(errors.New("medical report too large"), file.Filename)
		}

		contentType := medicalReportContentType(file)
		if !constvars.MedicalReportAllowedMIMETypes[contentType] {
			return exceptions.ErrUploadInvalidFileType(errors.New("medical report type not allowed"), file.Filename, contentType)
		}
	}
	return nil
}

// medicalReportContentType prefers the part's declared type and falls back to
// the file extension when the client sent none.
func medicalReportContentType(file *multipart.FileHeader) string {
	declared := file.Header.Get(constvars.HeaderContentType)
	if declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err == nil {
			return strings.ToLower(mediaType)
		}
	}

	byExtension := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	if byExtension == "" {
		return declared
	}
	mediaType, _, err := mime.ParseMediaType(byExtension)
	if err != nil {
		return byExtension
	}
	return mediaType
}
