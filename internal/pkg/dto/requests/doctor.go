package requests

type UpsertDoctorProfile struct {
	DoctorID        string   `json:"-"`
	FullName        string   `json:"fullName" validate:"required,not_blank,max=150"`
	Specialization  string   `json:"specialization" validate:"required,specialization"`
	Qualification   string   `json:"qualification" validate:"required,not_blank,max=200"`
	Experience      *int     `json:"experience" validate:"required,gte=0,lte=80"`
	ConsultationFee *float64 `json:"consultationFee" validate:"required,gte=0"`
	ClinicAddress   string   `json:"clinicAddress" validate:"required,not_blank,max=300"`
	PhoneNumber     string   `json:"phoneNumber" validate:"required,not_blank,max=30"`
	Email           string   `json:"email" validate:"required,email"`
	Bio             string   `json:"bio" validate:"max=1000"`
	Languages       []string `json:"languages" validate:"max=20,dive,not_blank"`
	Availability    string   `json:"availability" validate:"max=500"`
}

type ListDoctors struct {
	Specialization string
	Search         string
	Pagination     Pagination
}
