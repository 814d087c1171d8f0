package models

import "time"

// TimeSlot is the contended calendar resource a Booking claims. A slot
// holds at most one active booking reference; claiming and releasing are
// done with guarded updates so two admins can never double-book it.
type TimeSlot struct {
	ID          string    `bson:"id" json:"id"`
	Date        string    `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start       int       `bson:"start" json:"start"` // minutes from midnight
	End         int       `bson:"end" json:"end"`
	ServiceType string    `bson:"service_type" json:"serviceType"`
	BookingID   string    `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Booked      bool      `bson:"booked" json:"booked"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Available reports whether the slot can accept a new claim.
func (ts *TimeSlot) Available() bool {
	return !ts.Booked && ts.BookingID == ""
}
