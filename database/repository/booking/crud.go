// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		return utils.NewStorageError("insert booking", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("booking", id)
		}
		return nil, utils.NewStorageError("get booking", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) List(ctx context.Context, status string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" && status != models.BookingStatusFilterAll {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewStorageError("list bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewStorageError("decode bookings", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	res, err := r.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, utils.NewStorageError("transition booking", err)
	}
	return res.MatchedCount == 1, nil
}
