package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DoctorProfile struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	DoctorID          string             `json:"doctorId" bson:"doctorId"`
	FullName          string             `json:"fullName" bson:"fullName"`
	Specialization    string             `json:"specialization" bson:"specialization"`
	Qualification     string             `json:"qualification" bson:"qualification"`
	Experience        int                `json:"experience" bson:"experience"`
	ConsultationFee   float64            `json:"consultationFee" bson:"consultationFee"`
	ClinicAddress     string             `json:"clinicAddress" bson:"clinicAddress"`
	PhoneNumber       string             `json:"phoneNumber,omitempty" bson:"phoneNumber"`
	Email             string             `json:"email,omitempty" bson:"email"`
	Bio               string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Languages         []string           `json:"languages" bson:"languages"`
	Availability      string             `json:"availability,omitempty" bson:"availability,omitempty"`
	IsProfileComplete bool               `json:"isProfileComplete" bson:"isProfileComplete"`
	Rating            float64            `json:"rating" bson:"rating"`
	TotalReviews      int                `json:"totalReviews" bson:"totalReviews"`
	TimeModel         `bson:",inline"`
}

// Public strips contact details before a profile is shown to other users.
func (d DoctorProfile) Public() DoctorProfile {
	d.Email = ""
	d.PhoneNumber = ""
	return d
}
