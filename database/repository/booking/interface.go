// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConfirmUpdate carries the fields written onto a booking when an admin
// confirms it.
type ConfirmUpdate struct {
	ConfirmedDate string
	ConfirmedTime string
	ConfirmedBy   string
	MeetLink      string
	Notes         string
}

// RejectUpdate carries the fields written onto a booking when an admin
// rejects it.
type RejectUpdate struct {
	Reason     string
	RejectedBy string
	Notes      string
}

// BookingRepository defines data access for appointment bookings. The two
// transactional methods are the only place in the system that needs a
// multi-document atomic write: the booking status flip and the timeslot
// claim/release must land together or not at all.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, status string) ([]models.Booking, error)
	// ConfirmTransactionally atomically confirms the booking and claims its
	// timeslot. Fails with InvalidStateError when the booking is no longer
	// awaiting review or the slot is already claimed by another booking.
	ConfirmTransactionally(ctx context.Context, bookingID string, upd ConfirmUpdate) (*models.Booking, error)
	// RejectTransactionally atomically rejects the booking and releases its
	// timeslot if this booking held it.
	RejectTransactionally(ctx context.Context, bookingID string, upd RejectUpdate) (*models.Booking, error)
	// TransitionStatus moves a booking between post-review states (cancel,
	// complete). Returns false when the current status did not match from.
	TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error)
}

type mongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		slotColl:    db.Collection("timeslots"),
	}
}
