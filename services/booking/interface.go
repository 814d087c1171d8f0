package booking

import (
	"context"

	bookingRepo "mindhaven/database/repository/booking"
	timeslotRepo "mindhaven/database/repository/timeslot"
	"mindhaven/models"
)

// BookingService tracks an appointment request from client submission
// through admin review to confirmation or rejection. Confirm and reject
// are the only operations in the system that require a multi-document
// atomic write: the booking transition and the timeslot claim/release
// land together or not at all.
type BookingService interface {
	RequestBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string, decision models.AdminDecision) (*models.Booking, error)
	RejectBooking(ctx context.Context, bookingID string, decision models.AdminDecision) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	CompleteBooking(ctx context.Context, bookingID string) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, statusFilter string) ([]models.Booking, error)
}

// MeetLinkProvider obtains a video-conference URL for a confirmed
// appointment. The data contract only stores the returned URL.
type MeetLinkProvider interface {
	CreateMeetLink(ctx context.Context, booking *models.Booking) (string, error)
}

// DecisionNotifier fans a review decision out to the client. Dispatch
// failures are logged and never roll back the decision itself.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, payload models.NotificationPayload) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Slots     timeslotRepo.TimeSlotRepository
	MeetLinks MeetLinkProvider
	Notifier  DecisionNotifier
}
