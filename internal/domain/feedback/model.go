package feedback

import (
	"fmt"
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
)

// ContentFeedback is one user's verdict on one content item.
type ContentFeedback struct {
	ID          string       `firestore:"id" json:"id"`
	ContentType content.Type `firestore:"contentType" json:"contentType"`
	ContentID   string       `firestore:"contentId" json:"contentId"`
	UserID      string       `firestore:"userId" json:"userId"`
	Helpful     bool         `firestore:"helpful" json:"helpful"`
	Rating      *int         `firestore:"rating,omitempty" json:"rating,omitempty"`
	Comment     string       `firestore:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt   time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// ContentFeedbackID is deterministic so a user can hold at most one record per content item.
func ContentFeedbackID(ref content.Ref, uid string) string {
	return fmt.Sprintf("%s_%s_%s", ref.Type, ref.ID, uid)
}

type SubmitContentInput struct {
	ContentType content.Type `json:"contentType" validate:"required,oneof=article video faq"`
	ContentID   string       `json:"contentId" validate:"required,docid"`
	Helpful     *bool        `json:"helpful" validate:"required"`
	Rating      *int         `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment     string       `json:"comment,omitempty" validate:"max=1000"`
}

func (in *SubmitContentInput) Trim() {
	in.ContentID = strings.TrimSpace(in.ContentID)
	in.Comment = strings.TrimSpace(in.Comment)
}

type Summary struct {
	ContentType   content.Type `json:"contentType"`
	ContentID     string       `json:"contentId"`
	Helpful       int          `json:"helpful"`
	NotHelpful    int          `json:"notHelpful"`
	Total         int          `json:"total"`
	AverageRating float64      `json:"averageRating"`
	RatingsCount  int          `json:"ratingsCount"`
}

const (
	StatusNew      = "new"
	StatusReviewed = "reviewed"
)

// Feedback is a site-wide feedback form entry.
type Feedback struct {
	ID         string     `firestore:"id" json:"id"`
	UserID     string     `firestore:"userId,omitempty" json:"userId,omitempty"`
	Email      string     `firestore:"email" json:"email"`
	Type       string     `firestore:"type" json:"type"`
	Message    string     `firestore:"message" json:"message"`
	Page       string     `firestore:"page,omitempty" json:"page,omitempty"`
	Status     string     `firestore:"status" json:"status"`
	ReviewedBy string     `firestore:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `firestore:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
}

type SubmitSiteInput struct {
	Email   string `json:"email" validate:"required,email"`
	Type    string `json:"type" validate:"required,oneof=bug suggestion compliment other"`
	Message string `json:"message" validate:"required,max=5000"`
	Page    string `json:"page,omitempty" validate:"max=500"`
}

func (in *SubmitSiteInput) Trim() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Message = strings.TrimSpace(in.Message)
	in.Page = strings.TrimSpace(in.Page)
}

type SiteFilter struct {
	Status string
	Type   string
	Limit  int
}
