package faq

import (
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
)

type FAQ struct {
	ID        string         `firestore:"id" json:"id"`
	Question  string         `firestore:"question" json:"question"`
	Answer    string         `firestore:"answer" json:"answer"`
	Category  string         `firestore:"category" json:"category"`
	Tags      []string       `firestore:"tags" json:"tags"`
	Status    content.Status `firestore:"status" json:"status"`
	Order     int            `firestore:"order" json:"order"`
	CreatedBy string         `firestore:"createdBy" json:"createdBy"`
	CreatedAt time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `firestore:"updatedAt" json:"updatedAt"`
}

type FAQInput struct {
	Question string         `json:"question" validate:"required,min=10,max=300"`
	Answer   string         `json:"answer" validate:"required,min=20,max=20000"`
	Category string         `json:"category" validate:"required,max=80"`
	Tags     []string       `json:"tags,omitempty" validate:"max=20,dive,max=40"`
	Status   content.Status `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Order    int            `json:"order,omitempty" validate:"gte=0"`
}

func (in *FAQInput) Trim() {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	in.Category = strings.TrimSpace(in.Category)
}
