package requests

import "mime/multipart"

// UpsertPatientProfile is bound from the multipart profile form.
type UpsertPatientProfile struct {
	ClerkUserID          string `json:"-"`
	FirstName            string `json:"firstName" validate:"required,not_blank,max=100"`
	LastName             string `json:"lastName" validate:"required,not_blank,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required,not_blank,max=30"`
	DateOfBirth          string `json:"dateOfBirth" validate:"required"`
	Gender               string `json:"gender" validate:"required,oneof=male female other prefer-not-to-say"`
	Height               string `json:"height" validate:"omitempty,numeric"`
	Weight               string `json:"weight" validate:"omitempty,numeric"`
	BloodGroup           string `json:"bloodGroup" validate:"omitempty,blood_group"`
	EmergencyContact     string `json:"emergencyContact" validate:"max=100"`
	EmergencyPhone       string `json:"emergencyPhone" validate:"max=30"`
	Allergies            string `json:"allergies" validate:"max=2000"`
	CurrentMedications   string `json:"currentMedications" validate:"max=2000"`
	PastIllnesses        string `json:"pastIllnesses" validate:"max=2000"`
	SurgicalHistory      string `json:"surgicalHistory" validate:"max=2000"`
	FamilyMedicalHistory string `json:"familyMedicalHistory" validate:"max=2000"`
	SmokingStatus        string `json:"smokingStatus" validate:"omitempty,oneof=never former current"`
	DrinkingStatus       string `json:"drinkingStatus" validate:"omitempty,oneof=never occasional regular former"`
	ExerciseFrequency    string `json:"exerciseFrequency" validate:"omitempty,oneof=none light moderate heavy"`
	DietaryRestrictions  string `json:"dietaryRestrictions" validate:"max=2000"`

	MedicalReports []*multipart.FileHeader `json:"-"`
}

type FindPatientProfile struct {
	CallerID    string
	ClerkUserID string
}

type ListPatientAppointments struct {
	CallerID   string
	PatientID  string
	Status     string
	Pagination Pagination
}
