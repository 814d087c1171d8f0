package room

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepo struct {
	mu       sync.Mutex
	rooms    map[string]*models.ConsultationRoom
	messages map[string][]models.Message
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:    make(map[string]*models.ConsultationRoom),
		messages: make(map[string][]models.Message),
	}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.ConsultationRoom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*models.ConsultationRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, utils.NewNotFoundError("room", id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.ConsultationRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.SubscriptionID == subscriptionID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, utils.NewNotFoundError("room for subscription", subscriptionID)
}

func (f *fakeRoomRepo) GetByClientID(ctx context.Context, clientID string) ([]models.ConsultationRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ConsultationRoom
	for _, r := range f.rooms {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) SetPractitioner(ctx context.Context, roomID, practitionerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[roomID]
	if !ok {
		return utils.NewNotFoundError("room", roomID)
	}
	r.PractitionerID = practitionerID
	return nil
}

func (f *fakeRoomRepo) TouchActivity(ctx context.Context, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rooms[roomID]; ok {
		r.LastActivity = time.Now()
	}
	return nil
}

func (f *fakeRoomRepo) AppendMessage(ctx context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[msg.RoomID] = append(f.messages[msg.RoomID], *msg)
	return nil
}

func (f *fakeRoomRepo) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.messages[roomID]...), nil
}

func (f *fakeRoomRepo) MarkRead(ctx context.Context, roomID, viewerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	msgs := f.messages[roomID]
	for i := range msgs {
		if msgs[i].Sender != viewerID && !msgs[i].Read {
			msgs[i].Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeRoomRepo) CountUnread(ctx context.Context, roomID, viewerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.messages[roomID] {
		if m.Sender != viewerID && !m.Read {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("user", id)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, utils.NewNotFoundError("user", email)
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) AppendSubscriptionSummary(ctx context.Context, userID string, summary models.SubscriptionSummary) error {
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return nil, nil
}

// fakeBus delivers published messages to a single subscriber channel.
type fakeBus struct {
	mu        sync.Mutex
	published []models.Message
	subs      map[string][]chan models.Message
}

func newFakeBus() *fakeBus {
	return &fakeBus{subs: make(map[string][]chan models.Message)}
}

func (b *fakeBus) Publish(ctx context.Context, roomID string, msg models.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, msg)
	for _, ch := range b.subs[roomID] {
		ch <- msg
	}
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, roomID string) (<-chan models.Message, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan models.Message, 16)
	b.subs[roomID] = append(b.subs[roomID], ch)
	stop := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		chans := b.subs[roomID]
		for i, c := range chans {
			if c == ch {
				b.subs[roomID] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
	}
	return ch, stop, nil
}

func newTestRoomService() (*DefaultRoomService, *fakeRoomRepo, *fakeBus) {
	repo := newFakeRoomRepo()
	bus := newFakeBus()
	users := &fakeUserRepo{users: map[string]*models.User{
		"client-1": {ID: "client-1", FirstName: "Ava", LastName: "Okafor"},
		"prac-1":   {ID: "prac-1", FirstName: "Noah", LastName: "Kim"},
	}}
	svc := &DefaultRoomService{Repo: repo, Users: users, Bus: bus}
	return svc, repo, bus
}

func seedRoom(t *testing.T, repo *fakeRoomRepo) *models.ConsultationRoom {
	t.Helper()
	r := &models.ConsultationRoom{
		ID:             "room-1",
		SubscriptionID: "sub-1",
		ClientID:       "client-1",
		PractitionerID: "prac-1",
		PlanTitle:      "Individual Therapy",
		Status:         models.RoomStatusOpen,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestSendMessageRoundTrip(t *testing.T) {
	svc, repo, bus := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, "room-1", "client-1", "Hello, looking forward to our first session.")
	require.NoError(t, err)
	second, err := svc.SendMessage(ctx, "room-1", "prac-1", "Welcome Ava, let's find a good time.")
	require.NoError(t, err)

	assert.Equal(t, models.SenderClient, first.SenderType)
	assert.Equal(t, "Ava Okafor", first.SenderName)
	assert.Equal(t, models.SenderPractitioner, second.SenderType)
	assert.False(t, first.Read)

	msgs, err := svc.ListMessages(ctx, "room-1", "client-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, second.ID, msgs[1].ID)

	// each send is fanned out exactly once
	require.Len(t, bus.published, 2)
	assert.Equal(t, first.ID, bus.published[0].ID)

	room, _ := repo.GetByID(ctx, "room-1")
	assert.False(t, room.LastActivity.IsZero())
}

func TestSendMessageRejectsNonParticipants(t *testing.T) {
	svc, repo, _ := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "room-1", "stranger", "let me in")
	var authErr *utils.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	_, err = svc.SendMessage(ctx, "missing-room", "client-1", "hello?")
	var notFound *utils.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSendMessageContentLimits(t *testing.T) {
	svc, repo, _ := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	var vErr *utils.ValidationError
	_, err := svc.SendMessage(ctx, "room-1", "client-1", "   ")
	require.ErrorAs(t, err, &vErr)

	_, err = svc.SendMessage(ctx, "room-1", "client-1", strings.Repeat("a", MaxMessageLength+1))
	require.ErrorAs(t, err, &vErr)

	_, err = svc.SendMessage(ctx, "room-1", "client-1", strings.Repeat("a", MaxMessageLength))
	require.NoError(t, err)
}

func TestMarkAsReadFlipsOnlyOthersMessages(t *testing.T) {
	svc, repo, _ := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "room-1", "client-1", "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "room-1", "prac-1", "second")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "room-1", "prac-1", "third")
	require.NoError(t, err)

	unread, err := svc.UnreadCount(ctx, "room-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	n, err := svc.MarkAsRead(ctx, "room-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err = svc.UnreadCount(ctx, "room-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// the client's own message stays unread for the practitioner
	unread, err = svc.UnreadCount(ctx, "room-1", "prac-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, err = svc.MarkAsRead(ctx, "room-1", "stranger")
	var authErr *utils.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestStreamMessagesHistoryAndLiveTail(t *testing.T) {
	svc, repo, _ := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "room-1", "client-1", "before stream")
	require.NoError(t, err)

	history, live, stop, err := svc.StreamMessages(ctx, "room-1", "client-1")
	require.NoError(t, err)
	defer stop()

	require.Len(t, history, 1)
	assert.Equal(t, "before stream", history[0].Content)

	sent, err := svc.SendMessage(ctx, "room-1", "prac-1", "after stream")
	require.NoError(t, err)

	select {
	case got := <-live:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, "after stream", got.Content)
	case <-time.After(time.Second):
		t.Fatal("live message was not delivered")
	}

	stop()
	_, open := <-live
	assert.False(t, open, "channel must close on teardown")
}

func TestStreamMessagesDropsLiveDuplicatesOfHistory(t *testing.T) {
	svc, repo, bus := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	overlap, err := svc.SendMessage(ctx, "room-1", "client-1", "sent while the stream was opening")
	require.NoError(t, err)

	history, live, stop, err := svc.StreamMessages(ctx, "room-1", "client-1")
	require.NoError(t, err)
	defer stop()
	require.Len(t, history, 1)

	// a message already in the history may still arrive on the bus; the
	// live tail must not deliver it a second time
	require.NoError(t, bus.Publish(ctx, "room-1", *overlap))
	fresh, err := svc.SendMessage(ctx, "room-1", "prac-1", "only this one is new")
	require.NoError(t, err)

	select {
	case got := <-live:
		assert.Equal(t, fresh.ID, got.ID)
		assert.Equal(t, "only this one is new", got.Content)
	case <-time.After(time.Second):
		t.Fatal("live message was not delivered")
	}
}

func TestGetRoomAuthorization(t *testing.T) {
	svc, repo, _ := newTestRoomService()
	seedRoom(t, repo)
	ctx := context.Background()

	r, err := svc.GetRoom(ctx, "room-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", r.SubscriptionID)

	_, err = svc.GetRoom(ctx, "room-1", "stranger")
	var authErr *utils.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	rooms, err := svc.GetRoomsForClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}
