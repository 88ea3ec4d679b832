package patients

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Database) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPatients),
	}
}

func (r *PatientMongoRepository) FindByClerkUserID(ctx context.Context, clerkUserID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.Collection.FindOne(ctx, bson.M{"clerkUserId": clerkUserID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

// Upsert replaces every scalar field, leaving unset optional fields cleared,
// and appends newReports to the stored medical reports.
func (r *PatientMongoRepository) Upsert(ctx context.Context, patient *models.Patient, newReports []models.MedicalReport) (*models.Patient, error) {
	set := bson.M{
		"firstName":            patient.FirstName,
		"lastName":             patient.LastName,
		"email":                patient.Email,
		"phone":                patient.Phone,
		"dateOfBirth":          patient.DateOfBirth,
		"gender":               patient.Gender,
		"bloodGroup":           patient.BloodGroup,
		"emergencyContact":     patient.EmergencyContact,
		"emergencyPhone":       patient.EmergencyPhone,
		"allergies":            patient.Allergies,
		"currentMedications":   patient.CurrentMedications,
		"pastIllnesses":        patient.PastIllnesses,
		"surgicalHistory":      patient.SurgicalHistory,
		"familyMedicalHistory": patient.FamilyMedicalHistory,
		"smokingStatus":        patient.SmokingStatus,
		"drinkingStatus":       patient.DrinkingStatus,
		"exerciseFrequency":    patient.ExerciseFrequency,
		"dietaryRestrictions":  patient.DietaryRestrictions,
		"isProfileComplete":    patient.IsProfileComplete,
		"updatedAt":            patient.UpdatedAt,
	}
	unset := bson.M{}
	if patient.Height != nil {
		set["height"] = *patient.Height
	} else {
		unset["height"] = ""
	}
	if patient.Weight != nil {
		set["weight"] = *patient.Weight
	} else {
		unset["weight"] = ""
	}

	if newReports == nil {
		newReports = []models.MedicalReport{}
	}
	update := bson.M{
		"$set":         set,
		"$push":        bson.M{"medicalReports": bson.M{"$each": newReports}},
		"$setOnInsert": bson.M{"createdAt": patient.CreatedAt},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Patient
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"clerkUserId": patient.ClerkUserID}, update, opts).Decode(&saved)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &saved, nil
}

func (r *PatientMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clerkUserId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err)
	}
	return nil
}
