package article

import (
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
)

type Article struct {
	ID            string         `firestore:"id" json:"id"`
	Title         string         `firestore:"title" json:"title"`
	Slug          string         `firestore:"slug" json:"slug"`
	Content       string         `firestore:"content" json:"content"`
	Excerpt       string         `firestore:"excerpt" json:"excerpt"`
	Category      string         `firestore:"category" json:"category"`
	Tags          []string       `firestore:"tags" json:"tags"`
	Keywords      []string       `firestore:"keywords" json:"keywords"`
	FeaturedImage string         `firestore:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	AuthorID      string         `firestore:"authorId" json:"authorId"`
	AuthorName    string         `firestore:"authorName" json:"authorName"`
	Status        content.Status `firestore:"status" json:"status"`
	ReadTime      int            `firestore:"readTime" json:"readTime"`

	Views    int64    `firestore:"views" json:"views"`
	ViewedBy []string `firestore:"viewedBy" json:"-"`

	// PendingDraft holds auto-saved edits of an article that is already live.
	PendingDraft    *Snapshot  `firestore:"pendingDraft,omitempty" json:"pendingDraft,omitempty"`
	LastAutosavedAt *time.Time `firestore:"lastAutosavedAt,omitempty" json:"lastAutosavedAt,omitempty"`

	ScheduledAt *time.Time `firestore:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	PublishedAt *time.Time `firestore:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// Snapshot is the editable subset of an article captured by auto-save.
type Snapshot struct {
	Title         string   `firestore:"title" json:"title"`
	Content       string   `firestore:"content" json:"content"`
	Excerpt       string   `firestore:"excerpt" json:"excerpt"`
	Category      string   `firestore:"category" json:"category"`
	Tags          []string `firestore:"tags" json:"tags"`
	FeaturedImage string   `firestore:"featuredImage,omitempty" json:"featuredImage,omitempty"`
}

func (s *Snapshot) Trim() {
	s.Title = strings.TrimSpace(s.Title)
	s.Excerpt = strings.TrimSpace(s.Excerpt)
	s.Category = strings.TrimSpace(s.Category)
	s.FeaturedImage = strings.TrimSpace(s.FeaturedImage)
}

type Author struct {
	UID  string
	Name string
}

// ArticleInput is the full editor form; Update replaces every editable field with it.
type ArticleInput struct {
	Title         string         `json:"title" validate:"required,min=5,max=200"`
	Content       string         `json:"content" validate:"max=200000"`
	Excerpt       string         `json:"excerpt,omitempty" validate:"max=500"`
	Category      string         `json:"category" validate:"required,max=80"`
	Tags          []string       `json:"tags,omitempty" validate:"max=20,dive,max=40"`
	FeaturedImage string         `json:"featuredImage,omitempty" validate:"omitempty,url"`
	Status        content.Status `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	ScheduledAt   *time.Time     `json:"scheduledAt,omitempty"`
}

func (in *ArticleInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Category = strings.TrimSpace(in.Category)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
}

type ScheduleInput struct {
	ScheduledAt time.Time `json:"scheduledAt"`
}

type ListFilter struct {
	Status   content.Status
	Category string
	Limit    int
}

// minPublishedContent is the plain-text length an article needs before it can go live.
const minPublishedContent = 50
