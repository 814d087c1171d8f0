// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindhaven/models"
	"mindhaven/utils"
)

func (r *mongoTimeSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	ids := make([]string, len(slots))
	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.CreatedAt = now
		slot.UpdatedAt = now
		ids[i] = slot.ID
		docs[i] = slot
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, utils.NewStorageError("insert timeslots", err)
	}
	return ids, nil
}

func (r *mongoTimeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.TimeSlot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("timeslot", slotID)
		}
		return nil, utils.NewStorageError("get timeslot", err)
	}
	return &slot, nil
}

func (r *mongoTimeSlotRepo) GetAvailableByDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "booked": false}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewStorageError("list timeslots", err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, utils.NewStorageError("decode timeslots", err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) ReleaseByBookingID(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booking_id": bookingID}
	update := bson.M{"$set": bson.M{"booked": false, "booking_id": "", "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return utils.NewStorageError("release timeslot", err)
	}
	return nil
}

func (r *mongoTimeSlotRepo) DeleteByID(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// A claimed slot cannot be deleted out from under its booking.
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID, "booked": false})
	if err != nil {
		return utils.NewStorageError("delete timeslot", err)
	}
	if res.DeletedCount == 0 {
		return utils.NewNotFoundError("timeslot", slotID)
	}
	return nil
}
