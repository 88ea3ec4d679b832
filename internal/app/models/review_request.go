package models

import (
	"medtour-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRequest struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID    string             `json:"patientId" bson:"patientId"`
	DoctorID     string             `json:"doctorId" bson:"doctorId"`
	PatientName  string             `json:"patientName" bson:"patientName"`
	PatientEmail string             `json:"patientEmail" bson:"patientEmail"`
	Condition    string             `json:"condition" bson:"condition"`
	Message      string             `json:"message,omitempty" bson:"message,omitempty"`
	Status       string             `json:"status" bson:"status"`
	SubmittedOn  time.Time          `json:"submittedOn" bson:"submittedOn"`
	ReviewedOn   *time.Time         `json:"reviewedOn,omitempty" bson:"reviewedOn,omitempty"`
	DoctorNotes  string             `json:"doctorNotes,omitempty" bson:"doctorNotes,omitempty"`
	TimeModel    `bson:",inline"`
}

func (r *ReviewRequest) IsOwnedByDoctor(userID string) bool {
	return userID != "" && r.DoctorID == userID
}

func (r *ReviewRequest) IsOwnedByPatient(userID string) bool {
	return userID != "" && r.PatientID == userID
}

// IsClaimable reports whether scheduling may still approve the request.
func (r *ReviewRequest) IsClaimable() bool {
	return r.Status == constvars.ReviewRequestStatusPending || r.Status == constvars.ReviewRequestStatusReviewed
}

// ReviewRequestStats counts a doctor's requests per status.
type ReviewRequestStats struct {
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}
