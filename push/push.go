package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"wizspeek/database"
	"wizspeek/metrics"
	"wizspeek/models"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionStore interface {
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

type sendFunc func(message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

// Sender delivers notifications as Web Push messages signed with VAPID keys.
type Sender struct {
	subs       SubscriptionStore
	publicKey  string
	privateKey string
	subscriber string
	metrics    *metrics.Metrics
	send       sendFunc
}

func NewSender(subs SubscriptionStore, publicKey, privateKey, subscriber string, m *metrics.Metrics) *Sender {
	return &Sender{
		subs:       subs,
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		metrics:    m,
		send:       webpush.SendNotification,
	}
}

func (s *Sender) PublicKey() string {
	return s.publicKey
}

func (s *Sender) Enabled() bool {
	return s.publicKey != "" && s.privateKey != ""
}

func (s *Sender) Subscribe(ctx context.Context, userID primitive.ObjectID, sub webpush.Subscription) error {
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return errors.New("incomplete push subscription")
	}
	return s.subs.Upsert(ctx, &models.PushSubscription{UserID: userID, Sub: sub})
}

// Notify sends in the background; failures are logged, never returned.
func (s *Sender) Notify(userID primitive.ObjectID, n models.Notification) {
	if !s.Enabled() || n.Title == "" {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.deliver(ctx, userID, n)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Printf("Failed to send push notification to user %s: %v", userID.Hex(), err)
		}
	}()
}

func (s *Sender) deliver(ctx context.Context, userID primitive.ObjectID, n models.Notification) error {
	sub, err := s.subs.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"title": n.Title,
		"body":  n.Body,
		"data": map[string]interface{}{
			"type":      n.Type,
			"payload":   n.Payload,
			"timestamp": time.Now().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	resp, err := s.send(payload, &sub.Sub, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             30,
	})
	if resp != nil {
		defer resp.Body.Close()
	}
	if err == nil && resp != nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	s.metrics.ObserveNotification("push", err)

	// the browser dropped the subscription
	if resp != nil && resp.StatusCode == http.StatusGone {
		log.Printf("Push subscription expired for user %s, deleting...", userID.Hex())
		if delErr := s.subs.DeleteByUserID(ctx, userID); delErr != nil {
			log.Printf("Failed to delete expired subscription: %v", delErr)
		}
	}
	return err
}
