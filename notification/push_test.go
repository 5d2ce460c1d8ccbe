package notification

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
)

type fakeTokens map[string]string

func (f fakeTokens) DeviceToken(ctx context.Context, email string) (string, error) {
	token, ok := f[email]
	if !ok {
		return "", ErrNoDeviceToken
	}
	return token, nil
}

type fakeMessenger struct {
	got *messaging.Message
	err error
}

func (f *fakeMessenger) Send(ctx context.Context, message *messaging.Message) (string, error) {
	f.got = message
	return "projects/test/messages/1", f.err
}

func TestPushSender(t *testing.T) {
	tokens := fakeTokens{"maker@example.com": "device-token"}

	t.Run("sends to registered device", func(t *testing.T) {
		messenger := &fakeMessenger{}
		err := NewPushSender(tokens, messenger).Send(context.Background(), Message{
			ToEmail:  "maker@example.com",
			Body:     "Reminder: Email draft is due on Jun 23, 2025",
			LaunchID: "launch-1",
		})
		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if messenger.got.Token != "device-token" {
			t.Errorf("token = %q, want device-token", messenger.got.Token)
		}
		if messenger.got.Notification.Body != "Reminder: Email draft is due on Jun 23, 2025" {
			t.Errorf("body = %q", messenger.got.Notification.Body)
		}
		if messenger.got.Data["launchId"] != "launch-1" {
			t.Errorf("data = %v", messenger.got.Data)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		messenger := &fakeMessenger{}
		err := NewPushSender(tokens, messenger).Send(context.Background(), Message{ToEmail: "nobody@example.com"})
		if !errors.Is(err, ErrNoDeviceToken) {
			t.Errorf("Send() error = %v, want ErrNoDeviceToken", err)
		}
		if messenger.got != nil {
			t.Error("messenger called without a token")
		}
	})

	t.Run("fcm failure", func(t *testing.T) {
		fcmErr := errors.New("unavailable")
		err := NewPushSender(tokens, &fakeMessenger{err: fcmErr}).Send(context.Background(), Message{ToEmail: "maker@example.com"})
		if !errors.Is(err, fcmErr) {
			t.Errorf("Send() error = %v, want %v", err, fcmErr)
		}
	})
}
