// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoAppointmentRepo) findOne(ctx context.Context, filter bson.M) (*models.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", id, err)
	}
	return appt, nil
}

func (r *MongoAppointmentRepo) GetForParent(ctx context.Context, id, parentID string) (*models.Appointment, error) {
	appt, err := r.findOne(ctx, bson.M{"id": id, "parentId": parentID})
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", id, err)
	}
	return appt, nil
}

func (r *MongoAppointmentRepo) GetForTherapist(ctx context.Context, id, therapistID string) (*models.Appointment, error) {
	appt, err := r.findOne(ctx, bson.M{"id": id, "therapistId": therapistID})
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", id, err)
	}
	return appt, nil
}

func (r *MongoAppointmentRepo) ListByParent(ctx context.Context, parentID string, limit int64) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}, {Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"parentId": parentID}, opts)
}

func (r *MongoAppointmentRepo) ListByTherapist(ctx context.Context, therapistID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{"therapistId": therapistID}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = from
	}
	if !to.IsZero() {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["appointmentDate"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}, {Key: "appointmentTime", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoAppointmentRepo) IntervalTaken(ctx context.Context, therapistID string, dayStart, dayEnd time.Time, clock, excludeID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"therapistId":     therapistID,
		"appointmentDate": bson.M{"$gte": dayStart, "$lte": dayEnd},
		"appointmentTime": clock,
		"occupying":       true,
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check interval: %w", err)
	}
	return n > 0, nil
}
