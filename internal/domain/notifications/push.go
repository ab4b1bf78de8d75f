package notifications

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FCMPusher delivers a notification to the device token stored on users/{uid}.fcmToken.
type FCMPusher struct {
	fs  *firestore.Client
	msg *messaging.Client
}

func NewFCMPusher(fs *firestore.Client, msg *messaging.Client) *FCMPusher {
	return &FCMPusher{fs: fs, msg: msg}
}

func (p *FCMPusher) Push(ctx context.Context, n Notification) error {
	doc, err := p.fs.Collection("users").Doc(n.UserID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user for push: %w", err)
	}

	token, _ := doc.Data()["fcmToken"].(string)
	if token == "" {
		return nil
	}

	data := map[string]string{"notificationId": n.ID, "type": n.Type}
	if n.Link != "" {
		data["link"] = n.Link
	}
	_, err = p.msg.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}
