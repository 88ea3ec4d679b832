package doctors

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoctorProfileMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorProfileMongoRepository(db *mongo.Database) contracts.DoctorProfileRepository {
	return &DoctorProfileMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctorProfiles),
	}
}

func (r *DoctorProfileMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	err := r.Collection.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &profile, nil
}

func (r *DoctorProfileMongoRepository) Upsert(ctx context.Context, profile *models.DoctorProfile) (*models.DoctorProfile, error) {
	filter := bson.M{"doctorId": profile.DoctorID}
	update := bson.M{
		"$set": bson.M{
			"fullName":          profile.FullName,
			"specialization":    profile.Specialization,
			"qualification":     profile.Qualification,
			"experience":        profile.Experience,
			"consultationFee":   profile.ConsultationFee,
			"clinicAddress":     profile.ClinicAddress,
			"phoneNumber":       profile.PhoneNumber,
			"email":             profile.Email,
			"bio":               profile.Bio,
			"languages":         profile.Languages,
			"availability":      profile.Availability,
			"isProfileComplete": profile.IsProfileComplete,
			"updatedAt":         profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"createdAt":    profile.CreatedAt,
			"rating":       0,
			"totalReviews": 0,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.DoctorProfile
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &saved, nil
}

func (r *DoctorProfileMongoRepository) List(ctx context.Context, request *requests.ListDoctors) ([]models.DoctorProfile, int64, error) {
	filter := bson.M{"isProfileComplete": true}
	if request.Specialization != "" && request.Specialization != constvars.QueryValueAll {
		filter["specialization"] = request.Specialization
	}
	if search := strings.TrimSpace(request.Search); search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"fullName": pattern},
			bson.M{"specialization": pattern},
			bson.M{"clinicAddress": pattern},
		}
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(request.Pagination.Skip()).
		SetLimit(request.Pagination.Limit())

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	profiles := make([]models.DoctorProfile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return profiles, total, nil
}

func (r *DoctorProfileMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isProfileComplete", Value: 1}, {Key: "specialization", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err)
	}
	return nil
}
