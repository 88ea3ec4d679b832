package appointments

import (
	"context"
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

const millisecondsPerMinute = 60000

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}

	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrMongoDBDuplicateKey(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) List(ctx context.Context, filter contracts.AppointmentFilter, pagination requests.Pagination) ([]models.Appointment, int64, error) {
	query := buildAppointmentQuery(filter)

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledDate", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	appointments, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *AppointmentMongoRepository) FindUpcoming(ctx context.Context, filter contracts.AppointmentFilter, limit int64) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, buildAppointmentQuery(filter), opts)
}

func (r *AppointmentMongoRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error) {
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

func (r *AppointmentMongoRepository) CountDistinctPatients(ctx context.Context, doctorID string) (int64, error) {
	patientIDs, err := r.Collection.Distinct(ctx, "patientId", bson.M{"doctorId": doctorID})
	if err != nil {
		return 0, exceptions.ErrMongoDBAggregate(err)
	}
	return int64(len(patientIDs)), nil
}

// ListPatientsForDoctor groups a doctor's appointments per patient, latest first.
func (r *AppointmentMongoRepository) ListPatientsForDoctor(ctx context.Context, doctorID string, pagination requests.Pagination) ([]models.DoctorPatientSummary, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"doctorId": doctorID}}},
		{{Key: "$sort", Value: bson.D{{Key: "scheduledDate", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":               "$patientId",
			"patientName":       bson.M{"$first": "$patientName"},
			"latestAppointment": bson.M{"$max": "$scheduledDate"},
			"totalAppointments": bson.M{"$sum": 1},
			"statuses":          bson.M{"$addToSet": "$status"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "latestAppointment", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$facet", Value: bson.M{
			"total": bson.A{bson.M{"$count": "count"}},
			"patients": bson.A{
				bson.M{"$skip": pagination.Skip()},
				bson.M{"$limit": pagination.Limit()},
			},
		}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var pages []struct {
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		Patients []models.DoctorPatientSummary `bson:"patients"`
	}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}

	patients := make([]models.DoctorPatientSummary, 0)
	var total int64
	if len(pages) > 0 {
		patients = append(patients, pages[0].Patients...)
		if len(pages[0].Total) > 0 {
			total = pages[0].Total[0].Count
		}
	}
	return patients, total, nil
}

func (r *AppointmentMongoRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx,
		bson.M{"doctorId": doctorID, "patientId": patientID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count > 0, nil
}

func (r *AppointmentMongoRepository) MarkInProgress(ctx context.Context, appointmentID string, now time.Time) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": constvars.AppointmentStatusScheduled},
		bson.M{"$set": bson.M{"status": constvars.AppointmentStatusInProgress, "updatedAt": now}},
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus, meetingNotes string, now time.Time) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	set := bson.M{"status": toStatus, "updatedAt": now}
	if meetingNotes != "" {
		set["meetingNotes"] = meetingNotes
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Appointment
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "status": fromStatus},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

// FindDueForReminder returns scheduled, unreminded appointments that start at
// or before to and have not ended by from.
func (r *AppointmentMongoRepository) FindDueForReminder(ctx context.Context, from, to time.Time, limit int64) ([]models.Appointment, error) {
	query := buildAppointmentQuery(contracts.AppointmentFilter{
		Statuses:    []string{constvars.AppointmentStatusScheduled},
		ScheduledTo: &to,
		NotEndedAt:  &from,
	})
	query["reminderSentAt"] = bson.M{"$exists": false}

	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, query, opts)
}

func (r *AppointmentMongoRepository) MarkReminderSent(ctx context.Context, appointmentID string, now time.Time) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "reminderSentAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"reminderSentAt": now}},
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reviewRequestId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "scheduledDate", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "scheduledDate", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduledDate", Value: 1}}},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndexes(err)
	}
	return nil
}

// buildAppointmentQuery maps filter to a Mongo query. ScheduledTo is exclusive.
func buildAppointmentQuery(filter contracts.AppointmentFilter) bson.M {
	query := bson.M{}
	if filter.DoctorID != "" {
		query["doctorId"] = filter.DoctorID
	}
	if filter.PatientID != "" {
		query["patientId"] = filter.PatientID
	}
	switch len(filter.Statuses) {
	case 0:
	case 1:
		query["status"] = filter.Statuses[0]
	default:
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	scheduled := bson.M{}
	if filter.ScheduledFrom != nil {
		scheduled["$gte"] = *filter.ScheduledFrom
	}
	if filter.ScheduledTo != nil {
		scheduled["$lt"] = *filter.ScheduledTo
	}
	if len(scheduled) > 0 {
		query["scheduledDate"] = scheduled
	}

	if filter.NotEndedAt != nil {
		query["$expr"] = bson.M{"$gte": bson.A{
			bson.M{"$add": bson.A{
				"$scheduledDate",
				bson.M{"$multiply": bson.A{"$duration", millisecondsPerMinute}},
			}},
			*filter.NotEndedAt,
		}}
	}
	return query
}
