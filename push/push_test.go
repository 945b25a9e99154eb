package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"wizspeek/database"
	"wizspeek/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryStore struct {
	subs    map[primitive.ObjectID]*models.PushSubscription
	deleted []primitive.ObjectID
}

func (m *memoryStore) Upsert(_ context.Context, sub *models.PushSubscription) error {
	m.subs[sub.UserID] = sub
	return nil
}

func (m *memoryStore) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	sub, ok := m.subs[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return sub, nil
}

func (m *memoryStore) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	delete(m.subs, userID)
	m.deleted = append(m.deleted, userID)
	return nil
}

func response(code int) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(""))}
}

func TestSender_DeliverBuildsPayload(t *testing.T) {
	store := &memoryStore{subs: map[primitive.ObjectID]*models.PushSubscription{}}
	s := NewSender(store, "pub", "priv", "mailto:ops@wizspeek.app", nil)
	user := primitive.NewObjectID()

	sub := webpush.Subscription{Endpoint: "https://push.example/abc", Keys: webpush.Keys{P256dh: "p", Auth: "a"}}
	require.NoError(t, s.Subscribe(context.Background(), user, sub))

	var gotPayload map[string]interface{}
	var gotOpts *webpush.Options
	s.send = func(message []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error) {
		gotOpts = opts
		require.NoError(t, json.Unmarshal(message, &gotPayload))
		assert.Equal(t, "https://push.example/abc", sub.Endpoint)
		return response(http.StatusCreated), nil
	}

	err := s.deliver(context.Background(), user, models.Notification{
		Type: models.EventContactAdded, Title: "New contact", Body: "Grace H. added you as a contact",
	})
	require.NoError(t, err)
	assert.Equal(t, "New contact", gotPayload["title"])
	assert.Equal(t, "priv", gotOpts.VAPIDPrivateKey)
	assert.Equal(t, "mailto:ops@wizspeek.app", gotOpts.Subscriber)
}

func TestSender_GoneSubscriptionIsDeleted(t *testing.T) {
	user := primitive.NewObjectID()
	store := &memoryStore{subs: map[primitive.ObjectID]*models.PushSubscription{
		user: {UserID: user, Sub: webpush.Subscription{Endpoint: "https://push.example/x"}},
	}}
	s := NewSender(store, "pub", "priv", "mailto:ops@wizspeek.app", nil)
	s.send = func([]byte, *webpush.Subscription, *webpush.Options) (*http.Response, error) {
		return response(http.StatusGone), nil
	}

	err := s.deliver(context.Background(), user, models.Notification{Title: "x"})
	assert.Error(t, err)
	assert.Equal(t, []primitive.ObjectID{user}, store.deleted)
}

func TestSender_NoSubscription(t *testing.T) {
	s := NewSender(&memoryStore{subs: map[primitive.ObjectID]*models.PushSubscription{}}, "pub", "priv", "", nil)
	err := s.deliver(context.Background(), primitive.NewObjectID(), models.Notification{Title: "x"})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSender_SubscribeRejectsIncomplete(t *testing.T) {
	s := NewSender(&memoryStore{subs: map[primitive.ObjectID]*models.PushSubscription{}}, "pub", "priv", "", nil)
	err := s.Subscribe(context.Background(), primitive.NewObjectID(), webpush.Subscription{Endpoint: "https://push.example"})
	assert.Error(t, err)
}

func TestSender_DisabledWithoutKeys(t *testing.T) {
	assert.False(t, NewSender(nil, "", "", "", nil).Enabled())
	assert.True(t, NewSender(nil, "pub", "priv", "", nil).Enabled())
}
