package support

import (
	"strings"
	"time"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

var (
	Categories = []string{"general", "technical", "account", "billing", "content"}
	Priorities = []string{"low", "medium", "high", "urgent"}
	Statuses   = []string{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
)

type Ticket struct {
	ID          string     `firestore:"id" json:"id"`
	UserID      string     `firestore:"userId" json:"userId"`
	UserEmail   string     `firestore:"userEmail" json:"userEmail"`
	Subject     string     `firestore:"subject" json:"subject"`
	Description string     `firestore:"description" json:"description"`
	Category    string     `firestore:"category" json:"category"`
	Priority    string     `firestore:"priority" json:"priority"`
	Status      string     `firestore:"status" json:"status"`
	Responses   []Response `firestore:"responses" json:"responses"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

type Response struct {
	ID         string    `firestore:"id" json:"id"`
	AuthorID   string    `firestore:"authorId" json:"authorId"`
	AuthorName string    `firestore:"authorName" json:"authorName"`
	Message    string    `firestore:"message" json:"message"`
	IsAdmin    bool      `firestore:"isAdmin" json:"isAdmin"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
}

type Requester struct {
	UID   string
	Email string
	Name  string
	Admin bool
}

type CreateTicketInput struct {
	Subject     string `json:"subject" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required,min=20,max=5000"`
	Category    string `json:"category" validate:"required,oneof=general technical account billing content"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

func (in *CreateTicketInput) Trim() {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
}

type AddResponseInput struct {
	Message string `json:"message" validate:"required,max=5000"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}
