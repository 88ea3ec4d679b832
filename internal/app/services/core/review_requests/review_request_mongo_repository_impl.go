package reviewRequests

import (
	"context"
	"errors"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRequestMongoRepository struct {
	Collection *mongo.Collection
}

func NewReviewRequestMongoRepository(db *mongo.Database) contracts.ReviewRequestRepository {
	return &ReviewRequestMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionReviewRequests),
	}
}

func (r *ReviewRequestMongoRepository) Create(ctx context.Context, reviewRequest *models.ReviewRequest) (string, error) {
	result, err := r.Collection.InsertOne(ctx, reviewRequest)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBInsertDocument(errors.New("inserted id is not an ObjectID"))
	}
	reviewRequest.ID = objectID
	return objectID.Hex(), nil
}

func (r *ReviewRequestMongoRepository) FindByID(ctx context.Context, reviewRequestID string) (*models.ReviewRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(reviewRequestID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	var reviewRequest models.ReviewRequest
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reviewRequest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &reviewRequest, nil
}

func (r *ReviewRequestMongoRepository) ListByDoctor(ctx context.Context, doctorID, status string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error) {
	filter := bson.M{"doctorId": doctorID}
	if status != "" && status != constvars.ReviewRequestStatusAll {
		filter["status"] = status
	}
	return r.list(ctx, filter, pagination)
}

func (r *ReviewRequestMongoRepository) ListByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error) {
	return r.list(ctx, bson.M{"patientId": patientID}, pagination)
}

func (r *ReviewRequestMongoRepository) list(ctx context.Context, filter bson.M, pagination requests.Pagination) ([]models.ReviewRequest, int64, error) {
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedOn", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	reviewRequests := make([]models.ReviewRequest, 0)
	if err := cursor.All(ctx, &reviewRequests); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return reviewRequests, total, nil
}

func (r *ReviewRequestMongoRepository) CountByDoctorAndStatus(ctx context.Context, doctorID, status string) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"doctorId": doctorID, "status": status})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

func (r *ReviewRequestMongoRepository) CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"doctorId": doctorID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ReviewRequestMongoRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx,
		bson.M{"doctorId": doctorID, "patientId": patientID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count > 0, nil
}

func (r *ReviewRequestMongoRepository) UpdateReviewStatus(ctx context.Context, reviewRequestID, status, doctorNotes string, reviewedOn time.Time) (*models.ReviewRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(reviewRequestID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	set := bson.M{
		"status":     status,
		"reviewedOn": reviewedOn,
		"updatedAt":  reviewedOn,
	}
	if doctorNotes != "" {
		set["doctorNotes"] = doctorNotes
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$nin": bson.A{constvars.ReviewRequestStatusApproved, constvars.ReviewRequestStatusRejected}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ReviewRequest
	err = r.Collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *ReviewRequestMongoRepository) ClaimForApproval(ctx context.Context, reviewRequestID string, reviewedOn time.Time) (*models.ReviewRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(reviewRequestID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	filter := bson.M{
		"_id": objectID,
		"status": bson.M{"$in": bson.A{
			constvars.ReviewRequestStatusPending,
			constvars.ReviewRequestStatusReviewed,
		}},
	}
	update := bson.M{"$set": bson.M{
		"status":     constvars.ReviewRequestStatusApproved,
		"reviewedOn": reviewedOn,
		"updatedAt":  reviewedOn,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var previous models.ReviewRequest
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&previous)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &previous, nil
}

func (r *ReviewRequestMongoRepository) ReleaseApproval(ctx context.Context, reviewRequestID string, previous *models.ReviewRequest) error {
	objectID, err := primitive.ObjectIDFromHex(reviewRequestID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	update := bson.M{"$set": bson.M{
		"status":    previous.Status,
		"updatedAt": previous.UpdatedAt,
	}}
	if previous.ReviewedOn != nil {
		update["$set"].(bson.M)["reviewedOn"] = *previous.ReviewedOn
	} else {
		update["$unset"] = bson.M{"reviewedOn": ""}
	}

	filter := bson.M{"_id": objectID, "status": constvars.ReviewRequestStatusApproved}
	if _, err := r.Collection.UpdateOne(ctx, filter, update); err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *ReviewRequestMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "status", Value: 1}, {Key: "submittedOn", Value: -1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "submittedOn", Value: -1}}},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err)
	}
	return nil
}
