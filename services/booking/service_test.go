package booking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	bookingRepo "mindhaven/database/repository/booking"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs both the booking and timeslot fakes so the
// transactional claim can be simulated under one lock, the way the mongo
// transaction serializes it.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	slots    map[string]*models.TimeSlot
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[string]*models.Booking),
		slots:    make(map[string]*models.TimeSlot),
	}
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	cp := *b
	f.store.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	b, ok := f.store.bookings[id]
	if !ok {
		return nil, utils.NewNotFoundError("booking", id)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) List(ctx context.Context, status string) ([]models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Booking
	for _, b := range f.store.bookings {
		if status == "" || status == models.BookingStatusFilterAll || string(b.Status) == status {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookingRepo) ConfirmTransactionally(ctx context.Context, bookingID string, upd bookingRepo.ConfirmUpdate) (*models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[bookingID]
	if !ok {
		return nil, utils.NewNotFoundError("booking", bookingID)
	}
	if b.Status != models.BookingPendingAdmin {
		return nil, utils.NewInvalidStateError("booking", string(b.Status), "confirm")
	}
	slot, ok := f.store.slots[b.SlotID]
	if !ok {
		return nil, utils.NewNotFoundError("timeslot", b.SlotID)
	}
	if slot.Booked {
		return nil, utils.NewInvalidStateError("timeslot", "booked", "claim")
	}

	slot.Booked = true
	slot.BookingID = b.ID
	b.Status = models.BookingConfirmed
	b.ConfirmedDate = upd.ConfirmedDate
	b.ConfirmedTime = upd.ConfirmedTime
	b.ConfirmedBy = upd.ConfirmedBy
	b.MeetLink = upd.MeetLink
	b.AdminNotes = upd.Notes
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) RejectTransactionally(ctx context.Context, bookingID string, upd bookingRepo.RejectUpdate) (*models.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[bookingID]
	if !ok {
		return nil, utils.NewNotFoundError("booking", bookingID)
	}
	if b.Status != models.BookingPendingAdmin {
		return nil, utils.NewInvalidStateError("booking", string(b.Status), "reject")
	}
	if slot, ok := f.store.slots[b.SlotID]; ok && slot.BookingID == b.ID {
		slot.Booked = false
		slot.BookingID = ""
	}
	b.Status = models.BookingRejected
	b.RejectionReason = upd.Reason
	b.ReviewedBy = upd.RejectedBy
	b.AdminNotes = upd.Notes
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	b, ok := f.store.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	return true, nil
}

type fakeSlotRepo struct {
	store *fakeStore
}

func (f *fakeSlotRepo) CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	ids := make([]string, 0, len(slots))
	for i := range slots {
		cp := slots[i]
		f.store.slots[cp.ID] = &cp
		ids = append(ids, cp.ID)
	}
	return ids, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.TimeSlot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	s, ok := f.store.slots[slotID]
	if !ok {
		return nil, utils.NewNotFoundError("timeslot", slotID)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlotRepo) GetAvailableByDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range f.store.slots {
		if s.Date == date && !s.Booked {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ReleaseByBookingID(ctx context.Context, bookingID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, s := range f.store.slots {
		if s.BookingID == bookingID {
			s.Booked = false
			s.BookingID = ""
		}
	}
	return nil
}

func (f *fakeSlotRepo) DeleteByID(ctx context.Context, slotID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.slots, slotID)
	return nil
}

type fakeMeetLinks struct{}

func (f *fakeMeetLinks) CreateMeetLink(ctx context.Context, booking *models.Booking) (string, error) {
	return "https://meet.test/" + booking.ID, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []models.NotificationPayload
}

func (f *fakeNotifier) NotifyDecision(ctx context.Context, payload models.NotificationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

func newTestBookingService() (*DefaultBookingService, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Repo:      &fakeBookingRepo{store: store},
		Slots:     &fakeSlotRepo{store: store},
		MeetLinks: &fakeMeetLinks{},
		Notifier:  notifier,
	}
	return svc, store, notifier
}

func seedSlot(store *fakeStore, id string) {
	store.slots[id] = &models.TimeSlot{
		ID:          id,
		Date:        "2026-09-10",
		Start:       9 * 60,
		End:         10 * 60,
		ServiceType: "therapy",
	}
}

func testRequest(slotID string) models.BookingRequest {
	return models.BookingRequest{
		FirstName:     "Ava",
		LastName:      "Okafor",
		Email:         "ava@example.com",
		Phone:         "+15550100",
		ServiceType:   "therapy",
		SlotID:        slotID,
		PreferredDate: "2026-09-10",
		PreferredTime: "09:00",
	}
}

func TestRequestBookingEntersReviewQueue(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	assert.Equal(t, models.BookingPendingAdmin, b.Status)
	assert.Empty(t, b.MeetLink)
	assert.Empty(t, b.ConfirmedDate)

	// the request does not claim the slot
	slot := store.slots["slot-1"]
	assert.False(t, slot.Booked)
	assert.Empty(t, slot.BookingID)
}

func TestRequestBookingUnavailableSlot(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	store.slots["slot-1"].Booked = true

	_, err := svc.RequestBooking(context.Background(), "client-1", testRequest("slot-1"))
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestConfirmBookingClaimsSlotAndNotifies(t *testing.T) {
	svc, store, notifier := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	confirmed, err := svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, "2026-09-10", confirmed.ConfirmedDate)
	assert.Equal(t, "09:00", confirmed.ConfirmedTime)
	assert.Equal(t, "admin-1", confirmed.ConfirmedBy)
	assert.NotEmpty(t, confirmed.MeetLink)

	slot := store.slots["slot-1"]
	assert.True(t, slot.Booked)
	assert.Equal(t, b.ID, slot.BookingID)

	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, "client-1", notifier.payloads[0].UserID)
	assert.Equal(t, confirmed.MeetLink, notifier.payloads[0].Data["meetLink"])
}

func TestConfirmBookingOverridesDateAndTime(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	confirmed, err := svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{
		AdminID:       "admin-1",
		ConfirmedDate: "2026-09-11",
		ConfirmedTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-11", confirmed.ConfirmedDate)
	assert.Equal(t, "14:00", confirmed.ConfirmedTime)
}

func TestConfirmAlreadyDecidedBookingLeavesItUnchanged(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	first, err := svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-2"})
	var stateErr *utils.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	current, _ := svc.GetBooking(ctx, b.ID)
	assert.Equal(t, first.ConfirmedBy, current.ConfirmedBy)
	assert.Equal(t, first.MeetLink, current.MeetLink)

	_, err = svc.RejectBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-2", Reason: "too late"})
	require.ErrorAs(t, err, &stateErr)
}

func TestRejectBookingReleasesSlot(t *testing.T) {
	svc, store, notifier := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	_, err = svc.RejectBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1"})
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr, "a reason is required")

	rejected, err := svc.RejectBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1", Reason: "practitioner unavailable"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)
	assert.Equal(t, "practitioner unavailable", rejected.RejectionReason)
	assert.Equal(t, "admin-1", rejected.ReviewedBy)
	assert.Empty(t, rejected.ConfirmedBy)
	assert.Empty(t, rejected.MeetLink)

	// the slot is claimable again: a second booking can be confirmed on it
	slot := store.slots["slot-1"]
	assert.False(t, slot.Booked)

	b2, err := svc.RequestBooking(ctx, "client-2", testRequest("slot-1"))
	require.NoError(t, err)
	confirmed, err := svc.ConfirmBooking(ctx, b2.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)

	require.Len(t, notifier.payloads, 2)
}

func TestConcurrentConfirmsOnSameSlotExactlyOneWins(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b1, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)
	b2, err := svc.RequestBooking(ctx, "client-2", testRequest("slot-1"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{b1.ID, b2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.ConfirmBooking(ctx, id, models.AdminDecision{AdminID: "admin-1"})
		}(i, id)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			var stateErr *utils.InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one confirmation must lose the slot")

	slot := store.slots["slot-1"]
	assert.True(t, slot.Booked)

	winner, _ := svc.GetBooking(ctx, slot.BookingID)
	assert.Equal(t, models.BookingConfirmed, winner.Status)
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	var stateErr *utils.InvalidStateError
	require.ErrorAs(t, svc.CancelBooking(ctx, b.ID), &stateErr, "only confirmed bookings cancel")

	_, err = svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(ctx, b.ID))
	current, _ := svc.GetBooking(ctx, b.ID)
	assert.Equal(t, models.BookingCancelled, current.Status)
	assert.False(t, store.slots["slot-1"].Booked)
}

func TestCompleteBookingRequiresConfirmed(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)

	var stateErr *utils.InvalidStateError
	require.ErrorAs(t, svc.CompleteBooking(ctx, b.ID), &stateErr)

	_, err = svc.ConfirmBooking(ctx, b.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)
	require.NoError(t, svc.CompleteBooking(ctx, b.ID))

	current, _ := svc.GetBooking(ctx, b.ID)
	assert.Equal(t, models.BookingCompleted, current.Status)
}

func TestListBookingsFilterValidation(t *testing.T) {
	svc, store, _ := newTestBookingService()
	seedSlot(store, "slot-1")
	seedSlot(store, "slot-2")
	ctx := context.Background()

	b1, err := svc.RequestBooking(ctx, "client-1", testRequest("slot-1"))
	require.NoError(t, err)
	_, err = svc.RequestBooking(ctx, "client-2", testRequest("slot-2"))
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(ctx, b1.ID, models.AdminDecision{AdminID: "admin-1"})
	require.NoError(t, err)

	all, err := svc.ListBookings(ctx, models.BookingStatusFilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListBookings(ctx, string(models.BookingPendingAdmin))
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	confirmed, err := svc.ListBookings(ctx, string(models.BookingConfirmed))
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = svc.ListBookings(ctx, "banana")
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
}
