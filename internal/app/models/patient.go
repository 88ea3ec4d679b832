package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClerkUserID          string             `json:"clerkUserId" bson:"clerkUserId"`
	FirstName            string             `json:"firstName" bson:"firstName"`
	LastName             string             `json:"lastName" bson:"lastName"`
	Email                string             `json:"email" bson:"email"`
	Phone                string             `json:"phone" bson:"phone"`
	DateOfBirth          time.Time          `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender               string             `json:"gender" bson:"gender"`
	Height               *float64           `json:"height,omitempty" bson:"height,omitempty"`
	Weight               *float64           `json:"weight,omitempty" bson:"weight,omitempty"`
	BloodGroup           string             `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	EmergencyContact     string             `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
	EmergencyPhone       string             `json:"emergencyPhone,omitempty" bson:"emergencyPhone,omitempty"`
	Allergies            string             `json:"allergies,omitempty" bson:"allergies,omitempty"`
	CurrentMedications   string             `json:"currentMedications,omitempty" bson:"currentMedications,omitempty"`
	PastIllnesses        string             `json:"pastIllnesses,omitempty" bson:"pastIllnesses,omitempty"`
	SurgicalHistory      string             `json:"surgicalHistory,omitempty" bson:"surgicalHistory,omitempty"`
	FamilyMedicalHistory string             `json:"familyMedicalHistory,omitempty" bson:"familyMedicalHistory,omitempty"`
	SmokingStatus        string             `json:"smokingStatus,omitempty" bson:"smokingStatus,omitempty"`
	DrinkingStatus       string             `json:"drinkingStatus,omitempty" bson:"drinkingStatus,omitempty"`
	ExerciseFrequency    string             `json:"exerciseFrequency,omitempty" bson:"exerciseFrequency,omitempty"`
	DietaryRestrictions  string             `json:"dietaryRestrictions,omitempty" bson:"dietaryRestrictions,omitempty"`
	MedicalReports       []MedicalReport    `json:"medicalReports" bson:"medicalReports"`
	IsProfileComplete    bool               `json:"isProfileComplete" bson:"isProfileComplete"`
	TimeModel            `bson:",inline"`
}

type MedicalReport struct {
	FileName     string    `json:"fileName" bson:"fileName"`
	OriginalName string    `json:"originalName" bson:"originalName"`
	FilePath     string    `json:"filePath" bson:"filePath"`
	ContentType  string    `json:"contentType" bson:"contentType"`
	FileSize     int64     `json:"fileSize" bson:"fileSize"`
	UploadDate   time.Time `json:"uploadDate" bson:"uploadDate"`
}

// PatientProfileStatus answers whether a profile exists and is complete.
type PatientProfileStatus struct {
	Exists     bool `json:"exists"`
	IsComplete bool `json:"isComplete"`
}
