// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository defines data access for appointment slots. Claiming
// and releasing during admin review happens inside the booking repository's
// transaction; this repository covers setup and read paths.
type TimeSlotRepository interface {
	CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error)
	GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error)
	GetAvailableByDate(ctx context.Context, date string) ([]models.TimeSlot, error)
	// ReleaseByBookingID frees the slot held by the given booking, used by
	// the post-review cancel flow.
	ReleaseByBookingID(ctx context.Context, bookingID string) error
	DeleteByID(ctx context.Context, slotID string) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: database.DB().Collection("timeslots"),
	}
}
