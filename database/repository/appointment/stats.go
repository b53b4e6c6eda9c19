package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
)

type monthRow struct {
	ID struct {
		Year  int `bson:"year"`
		Month int `bson:"month"`
	} `bson:"_id"`
	Total     int64 `bson:"total"`
	Completed int64 `bson:"completed"`
	Cancelled int64 `bson:"cancelled"`
}

func countStatus(status models.AppointmentStatus) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
}

// monthlyPipeline groups appointments dated on or after since by calendar
// month in since's UTC offset.
func monthlyPipeline(filter map[string]string, since time.Time) bson.A {
	match := bson.M{"appointmentDate": bson.M{"$gte": since}}
	for k, v := range filter {
		match[k] = v
	}
	tz := since.Format("-07:00")
	return bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": bson.M{"date": "$appointmentDate", "timezone": tz}},
				"month": bson.M{"$month": bson.M{"date": "$appointmentDate", "timezone": tz}},
			},
			"total":     bson.M{"$sum": 1},
			"completed": countStatus(models.StatusCompleted),
			"cancelled": countStatus(models.StatusCancelled),
		}},
		bson.M{"$sort": bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}},
	}
}

// MonthlyCounts returns per-month appointment counts, oldest first. Months
// without appointments are absent.
func (r *MongoAppointmentRepo) MonthlyCounts(ctx context.Context, filter map[string]string, since time.Time) ([]models.MonthlyCount, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, monthlyPipeline(filter, since))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []monthRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding appointment counts: %w", err)
	}
	out := make([]models.MonthlyCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.MonthlyCount{
			Month:     fmt.Sprintf("%04d-%02d", row.ID.Year, row.ID.Month),
			Total:     row.Total,
			Completed: row.Completed,
			Cancelled: row.Cancelled,
		})
	}
	return out, nil
}
