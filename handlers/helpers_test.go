package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/booking"
	"github.com/DharunKumar-K/eventpulse/database"
	"github.com/DharunKumar-K/eventpulse/handlers"
	"github.com/DharunKumar-K/eventpulse/model"
	"github.com/DharunKumar-K/eventpulse/router"
)

const testSecret = "test-secret"

type testEnv struct {
	app   *fiber.App
	store *booking.MemStore
	users *fakeUsers
	stats *fakeStats
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("SIGN", testSecret)

	store := booking.NewMemStore()
	users := newFakeUsers()
	stats := &fakeStats{}

	engine := booking.NewEngine(store)
	h := handlers.New(engine, &fakeEvents{store: store}, users, stats)

	app := fiber.New()
	router.SetupRoutes(app, h)

	return &testEnv{app: app, store: store, users: users, stats: stats}
}

func (env *testEnv) seedEvent(totalSeats, availableSeats int64, price float64, status string, organizer primitive.ObjectID) model.Event {
	event := model.Event{
		Id:             primitive.NewObjectID(),
		Title:          "Sample Event",
		Date:           time.Now().Add(14 * 24 * time.Hour).UTC(),
		Price:          price,
		TotalSeats:     totalSeats,
		AvailableSeats: availableSeats,
		Organizer:      organizer,
		Category:       model.CategoryConcert,
		Status:         status,
	}
	env.store.PutEvent(event)
	return event
}

func signToken(t *testing.T, userId primitive.ObjectID, role string) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = userId.Hex()
	claims["role"] = role
	claims["exp"] = time.Now().Add(time.Hour).Unix()

	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return res, payload
}

// fakeUsers is an in-memory handlers.UserStore.
type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[primitive.ObjectID]model.User)}
}

func (f *fakeUsers) CreateUser(ctx context.Context, user model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return database.ErrEmailTaken
		}
	}
	f.users[user.Id] = user
	return nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, database.ErrUserNotFound
}

func (f *fakeUsers) GetUserById(ctx context.Context, userId primitive.ObjectID) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return model.User{}, database.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		user.HashedPassword = ""
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUsers) FirstUserByRole(ctx context.Context, role string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Role == role {
			return user, nil
		}
	}
	return model.User{}, database.ErrUserNotFound
}

// fakeEvents adapts booking.MemStore to handlers.EventStore so handler tests
// and the engine share one source of truth for availability.
type fakeEvents struct {
	store *booking.MemStore
}

func (f *fakeEvents) CreateEvent(ctx context.Context, event model.Event) error {
	f.store.PutEvent(event)
	return nil
}

func (f *fakeEvents) GetEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error) {
	return f.store.GetEvent(ctx, eventId)
}

func (f *fakeEvents) ListEvents(ctx context.Context, includeCancelled bool) ([]model.Event, error) {
	events := []model.Event{}
	for _, event := range f.store.Events() {
		if !includeCancelled && event.Status == model.EventStatusCancelled {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (f *fakeEvents) UpdateEvent(ctx context.Context, event model.Event) error {
	if _, ok := f.store.Event(event.Id); !ok {
		return booking.ErrEventNotFound
	}
	f.store.PutEvent(event)
	return nil
}

func (f *fakeEvents) DeleteEvent(ctx context.Context, eventId primitive.ObjectID) error {
	if _, ok := f.store.Event(eventId); !ok {
		return booking.ErrEventNotFound
	}
	f.store.DeleteEvent(eventId)
	return nil
}

func (f *fakeEvents) SeedEvents(ctx context.Context, events []model.Event) error {
	for _, event := range f.store.Events() {
		f.store.DeleteEvent(event.Id)
	}
	for _, event := range events {
		f.store.PutEvent(event)
	}
	return nil
}

// fakeStats is a canned handlers.StatsStore.
type fakeStats struct {
	stats    model.PlatformStats
	rollups  []model.EventRollup
	bookings []model.Booking
}

func (f *fakeStats) PlatformStats(ctx context.Context) (model.PlatformStats, error) {
	return f.stats, nil
}

func (f *fakeStats) EventRollups(ctx context.Context) ([]model.EventRollup, error) {
	return f.rollups, nil
}

func (f *fakeStats) ListAllBookings(ctx context.Context) ([]model.Booking, error) {
	return f.bookings, nil
}
