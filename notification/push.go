package notification

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNoDeviceToken is returned when a user has not registered a device.
var ErrNoDeviceToken = errors.New("no device token registered")

const (
	deviceTokenCollection = "deviceTokens"
	deviceTokenField      = "fcmToken"
)

type TokenStore interface {
	DeviceToken(ctx context.Context, email string) (string, error)
}

// Messenger is the part of the FCM client used for delivery.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirestoreTokenStore reads device tokens from deviceTokens/<email>.
type FirestoreTokenStore struct {
	client *firestore.Client
}

func NewFirestoreTokenStore(client *firestore.Client) *FirestoreTokenStore {
	return &FirestoreTokenStore{client: client}
}

func (s *FirestoreTokenStore) DeviceToken(ctx context.Context, email string) (string, error) {
	doc, err := s.client.Collection(deviceTokenCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrNoDeviceToken
		}
		return "", fmt.Errorf("failed to get device token for %s: %w", email, err)
	}
	token, ok := doc.Data()[deviceTokenField].(string)
	if !ok || token == "" {
		return "", ErrNoDeviceToken
	}
	return token, nil
}

// PushSender delivers reminders as FCM notifications.
type PushSender struct {
	tokens    TokenStore
	messenger Messenger
}

func NewPushSender(tokens TokenStore, messenger Messenger) *PushSender {
	return &PushSender{tokens: tokens, messenger: messenger}
}

func (p *PushSender) Send(ctx context.Context, msg Message) error {
	token, err := p.tokens.DeviceToken(ctx, msg.ToEmail)
	if err != nil {
		return err
	}
	_, err = p.messenger.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "GoToLaunch Reminder",
			Body:  msg.Body,
		},
		Data: map[string]string{
			"launchId": msg.LaunchID,
		},
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}
