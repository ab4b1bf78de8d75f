package notifications

import (
	"strings"
	"time"
)

const (
	TypeCommentReply   = "comment_reply"
	TypeTicketResponse = "ticket_response"
	TypeGeneral        = "general"
)

var ValidTypes = []string{TypeCommentReply, TypeTicketResponse, TypeGeneral}

func IsValidType(t string) bool {
	if t == "" {
		return true // defaults to general
	}
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Notification represents a notification
type Notification struct {
	ID        string     `firestore:"id" json:"id"`
	UserID    string     `firestore:"userId" json:"userId"`
	Title     string     `firestore:"title" json:"title"`
	Body      string     `firestore:"body" json:"body"`
	Type      string     `firestore:"type" json:"type"`
	Link      string     `firestore:"link,omitempty" json:"link,omitempty"`
	Read      bool       `firestore:"read" json:"read"`
	ReadAt    *time.Time `firestore:"readAt,omitempty" json:"readAt,omitempty"`
	SenderUID string     `firestore:"senderUid,omitempty" json:"senderUid,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
}

// CreateNotificationInput represents input for creating a notification
type CreateNotificationInput struct {
	TargetUID string `json:"targetUid" validate:"required"`
	Title     string `json:"title" validate:"required,max=200"`
	Body      string `json:"body,omitempty" validate:"max=1000"`
	Type      string `json:"type,omitempty"`
	Link      string `json:"link,omitempty"`
}

func (in *CreateNotificationInput) Trim() {
	in.TargetUID = strings.TrimSpace(in.TargetUID)
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.Type = strings.TrimSpace(in.Type)
	in.Link = strings.TrimSpace(in.Link)
}

// MarkReadInput represents input for marking notifications as read
type MarkReadInput struct {
	NotificationID string `json:"notificationId,omitempty"`
	MarkAll        bool   `json:"markAll,omitempty"`
}

func (in *MarkReadInput) Trim() {
	in.NotificationID = strings.TrimSpace(in.NotificationID)
}

// NotificationsListResult represents the result of listing notifications
type NotificationsListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}
