package requests

type CreateReviewRequest struct {
	PatientID    string `json:"-"`
	DoctorID     string `json:"doctorId" validate:"required,not_blank"`
	PatientName  string `json:"patientName" validate:"required,not_blank,max=150"`
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	Condition    string `json:"condition" validate:"required,not_blank,max=500"`
	Message      string `json:"message" validate:"max=500"`
}

type ListDoctorReviewRequests struct {
	CallerID   string
	DoctorID   string
	Status     string
	Pagination Pagination
}

type ListPatientReviewRequests struct {
	CallerID   string
	PatientID  string
	Pagination Pagination
}

type UpdateReviewRequestStatus struct {
	CallerID        string `json:"-"`
	ReviewRequestID string `json:"-"`
	Status          string `json:"status" validate:"required,oneof=pending reviewed approved rejected"`
	DoctorNotes     string `json:"doctorNotes" validate:"max=1000"`
}
