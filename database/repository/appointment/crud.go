// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	appt.Occupying = appt.OccupiesInterval()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	appt.UpdatedAt = time.Now()
	appt.Occupying = appt.OccupiesInterval()

	set := bson.M{
		"appointmentDate":   appt.AppointmentDate,
		"appointmentTime":   appt.AppointmentTime,
		"notes":             appt.Notes,
		"status":            appt.Status,
		"paymentStatus":     appt.PaymentStatus,
		"providerOrderId":   appt.ProviderOrderID,
		"providerPaymentId": appt.ProviderPaymentID,
		"providerSignature": appt.ProviderSignature,
		"paymentDate":       appt.PaymentDate,
		"occupying":         appt.Occupying,
		"updatedAt":         appt.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": appt.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", appt.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s: %w", appt.ID, mongo.ErrNoDocuments)
	}
	return nil
}
