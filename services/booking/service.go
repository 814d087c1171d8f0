package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "mindhaven/database/repository/booking"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedFilters = map[string]bool{
	"":                                 true,
	models.BookingStatusFilterAll:      true,
	string(models.BookingPendingAdmin): true,
	string(models.BookingConfirmed):    true,
	string(models.BookingRejected):     true,
}

// RequestBooking records a client's appointment request against a slot and
// places it in the admin review queue. The slot is not claimed yet; the
// claim happens atomically at confirmation.
func (s *DefaultBookingService) RequestBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	slot, err := s.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if !slot.Available() {
		return nil, utils.NewValidationError("the requested time slot is no longer available")
	}

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceType:     req.ServiceType,
		SlotID:          slot.ID,
		PreferredDate:   req.PreferredDate,
		PreferredTime:   req.PreferredTime,
		Status:          models.BookingPendingAdmin,
		MedicalHistory:  req.MedicalHistory,
		CurrentConcerns: req.CurrentConcerns,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ConfirmBooking is the admin accept path. Preconditions are checked fast
// before any write, the meet link is obtained, and then the booking flip
// and slot claim commit as one atomic unit. When two admins race on the
// same slot exactly one confirmation wins; the loser sees an
// InvalidStateError and the booking stays reviewable.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, bookingID string, decision models.AdminDecision) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPendingAdmin {
		return nil, utils.NewInvalidStateError("booking", string(booking.Status), "confirm")
	}

	meetLink, err := s.MeetLinks.CreateMeetLink(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain meet link: %w", err)
	}

	confirmedDate := decision.ConfirmedDate
	if confirmedDate == "" {
		confirmedDate = booking.PreferredDate
	}
	confirmedTime := decision.ConfirmedTime
	if confirmedTime == "" {
		confirmedTime = booking.PreferredTime
	}

	confirmed, err := s.Repo.ConfirmTransactionally(ctx, bookingID, bookingRepo.ConfirmUpdate{
		ConfirmedDate: confirmedDate,
		ConfirmedTime: confirmedTime,
		ConfirmedBy:   decision.AdminID,
		MeetLink:      meetLink,
		Notes:         decision.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, confirmed, models.NotificationPayload{
		UserID: confirmed.UserID,
		Email:  confirmed.Email,
		Title:  "Your appointment is confirmed",
		Body: fmt.Sprintf("Your %s session on %s at %s is confirmed. Your meet link is ready.",
			confirmed.ServiceType, confirmed.ConfirmedDate, confirmed.ConfirmedTime),
		Data: map[string]string{
			"bookingId": confirmed.ID,
			"meetLink":  confirmed.MeetLink,
		},
	})
	return confirmed, nil
}

// RejectBooking is the admin decline path: the booking moves to rejected
// with the reason recorded and the slot is released in the same atomic
// unit, making it claimable again.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, bookingID string, decision models.AdminDecision) (*models.Booking, error) {
	if decision.Reason == "" {
		return nil, utils.NewValidationError("a rejection reason is required")
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPendingAdmin {
		return nil, utils.NewInvalidStateError("booking", string(booking.Status), "reject")
	}

	rejected, err := s.Repo.RejectTransactionally(ctx, bookingID, bookingRepo.RejectUpdate{
		Reason:     decision.Reason,
		RejectedBy: decision.AdminID,
		Notes:      decision.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rejected, models.NotificationPayload{
		UserID: rejected.UserID,
		Email:  rejected.Email,
		Title:  "About your appointment request",
		Body: fmt.Sprintf("We couldn't confirm your %s session request: %s. Please pick another time.",
			rejected.ServiceType, rejected.RejectionReason),
		Data: map[string]string{"bookingId": rejected.ID},
	})
	return rejected, nil
}

// notify dispatches the decision fanout. Failure is logged only; the
// decision already committed and must not be rolled back.
func (s *DefaultBookingService) notify(ctx context.Context, booking *models.Booking, payload models.NotificationPayload) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyDecision(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to dispatch booking decision notification",
			zap.String("bookingId", booking.ID),
			zap.Error(err),
		)
	}
}

// CancelBooking moves a confirmed booking to cancelled and releases its
// slot. Only confirmed bookings can be cancelled through this path.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	ok, err := s.Repo.TransitionStatus(ctx, bookingID, models.BookingConfirmed, models.BookingCancelled)
	if err != nil {
		return err
	}
	if !ok {
		booking, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		return utils.NewInvalidStateError("booking", string(booking.Status), "cancel")
	}
	if err := s.Slots.ReleaseByBookingID(ctx, bookingID); err != nil {
		utils.GetLogger().Warn("failed to release slot for cancelled booking",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return nil
}

// CompleteBooking retires a confirmed booking once the session happened.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string) error {
	ok, err := s.Repo.TransitionStatus(ctx, bookingID, models.BookingConfirmed, models.BookingCompleted)
	if err != nil {
		return err
	}
	if !ok {
		booking, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		return utils.NewInvalidStateError("booking", string(booking.Status), "complete")
	}
	return nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListBookings is the admin read view: filterable by review status and
// sorted newest first. It has no state effect.
func (s *DefaultBookingService) ListBookings(ctx context.Context, statusFilter string) ([]models.Booking, error) {
	if !allowedFilters[statusFilter] {
		return nil, utils.NewValidationError("unknown status filter %q", statusFilter)
	}
	return s.Repo.List(ctx, statusFilter)
}
