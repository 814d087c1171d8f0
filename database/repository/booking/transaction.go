// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runInTransaction executes fn inside a mongo session transaction. A failed
// fn aborts the transaction so neither write is applied.
func (r *mongoBookingRepo) runInTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return utils.NewStorageError("start mongo session", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return utils.NewStorageError("start transaction", err)
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return utils.NewStorageError("commit transaction", err)
		}
		return nil
	})
}

// loadForReview fetches the booking inside the session and checks it is
// still awaiting admin review.
func (r *mongoBookingRepo) loadForReview(sc mongo.SessionContext, bookingID, op string) (*models.Booking, error) {
	var booking models.Booking
	err := r.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("booking", bookingID)
		}
		return nil, utils.NewStorageError("get booking", err)
	}
	if booking.Status != models.BookingPendingAdmin {
		return nil, utils.NewInvalidStateError("booking", string(booking.Status), op)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) ConfirmTransactionally(ctx context.Context, bookingID string, upd ConfirmUpdate) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var confirmed *models.Booking
	txnErr := r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		booking, err := r.loadForReview(sc, bookingID, "confirm")
		if err != nil {
			return err
		}

		now := time.Now()
		bookingFilter := bson.M{"id": bookingID, "status": models.BookingPendingAdmin}
		bookingUpdate := bson.M{"$set": bson.M{
			"status":         models.BookingConfirmed,
			"confirmed_date": upd.ConfirmedDate,
			"confirmed_time": upd.ConfirmedTime,
			"confirmed_by":   upd.ConfirmedBy,
			"meet_link":      upd.MeetLink,
			"admin_notes":    upd.Notes,
			"updated_at":     now,
		}}
		res, err := r.bookingColl.UpdateOne(sc, bookingFilter, bookingUpdate)
		if err != nil {
			return utils.NewStorageError("confirm booking", err)
		}
		if res.MatchedCount == 0 {
			return utils.NewInvalidStateError("booking", string(booking.Status), "confirm")
		}

		// Claim the slot only if nobody else holds it. A zero match here
		// means a concurrent confirmation won the slot; abort so the
		// booking stays reviewable.
		slotFilter := bson.M{"id": booking.SlotID, "booked": false}
		slotUpdate := bson.M{"$set": bson.M{
			"booked":     true,
			"booking_id": bookingID,
			"updated_at": now,
		}}
		slotRes, err := r.slotColl.UpdateOne(sc, slotFilter, slotUpdate)
		if err != nil {
			return utils.NewStorageError("claim timeslot", err)
		}
		if slotRes.MatchedCount == 0 {
			return utils.NewInvalidStateError("timeslot", "booked", "claim")
		}

		booking.Status = models.BookingConfirmed
		booking.ConfirmedDate = upd.ConfirmedDate
		booking.ConfirmedTime = upd.ConfirmedTime
		booking.ConfirmedBy = upd.ConfirmedBy
		booking.MeetLink = upd.MeetLink
		booking.AdminNotes = upd.Notes
		booking.UpdatedAt = now
		confirmed = booking
		return nil
	})
	if txnErr != nil {
		return nil, txnErr
	}
	return confirmed, nil
}

func (r *mongoBookingRepo) RejectTransactionally(ctx context.Context, bookingID string, upd RejectUpdate) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var rejected *models.Booking
	txnErr := r.runInTransaction(ctx, func(sc mongo.SessionContext) error {
		booking, err := r.loadForReview(sc, bookingID, "reject")
		if err != nil {
			return err
		}

		now := time.Now()
		bookingFilter := bson.M{"id": bookingID, "status": models.BookingPendingAdmin}
		bookingUpdate := bson.M{"$set": bson.M{
			"status":           models.BookingRejected,
			"rejection_reason": upd.Reason,
			"reviewed_by":      upd.RejectedBy,
			"admin_notes":      upd.Notes,
			"updated_at":       now,
		}}
		res, err := r.bookingColl.UpdateOne(sc, bookingFilter, bookingUpdate)
		if err != nil {
			return utils.NewStorageError("reject booking", err)
		}
		if res.MatchedCount == 0 {
			return utils.NewInvalidStateError("booking", string(booking.Status), "reject")
		}

		// Release the slot if this booking held it. No match is fine: the
		// slot was never claimed for this booking.
		slotFilter := bson.M{"id": booking.SlotID, "booking_id": bookingID}
		slotUpdate := bson.M{"$set": bson.M{
			"booked":     false,
			"booking_id": "",
			"updated_at": now,
		}}
		if _, err := r.slotColl.UpdateOne(sc, slotFilter, slotUpdate); err != nil {
			return utils.NewStorageError("release timeslot", err)
		}

		booking.Status = models.BookingRejected
		booking.RejectionReason = upd.Reason
		booking.ReviewedBy = upd.RejectedBy
		booking.AdminNotes = upd.Notes
		booking.UpdatedAt = now
		rejected = booking
		return nil
	})
	if txnErr != nil {
		return nil, txnErr
	}
	return rejected, nil
}
