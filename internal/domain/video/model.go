package video

import (
	"regexp"
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
)

type Video struct {
	ID           string         `firestore:"id" json:"id"`
	Title        string         `firestore:"title" json:"title"`
	Slug         string         `firestore:"slug" json:"slug"`
	Description  string         `firestore:"description" json:"description"`
	VideoURL     string         `firestore:"videoUrl" json:"videoUrl"`
	ThumbnailURL string         `firestore:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	PublicID     string         `firestore:"publicId,omitempty" json:"publicId,omitempty"`
	Category     string         `firestore:"category" json:"category"`
	Duration     string         `firestore:"duration" json:"duration"`
	Tags         []string       `firestore:"tags" json:"tags"`
	Status       content.Status `firestore:"status" json:"status"`
	AuthorID     string         `firestore:"authorId" json:"authorId"`

	Views    int64    `firestore:"views" json:"views"`
	ViewedBy []string `firestore:"viewedBy" json:"-"`

	// PendingDraft holds auto-saved edits of a video that is already live or scheduled.
	PendingDraft    *Snapshot  `firestore:"pendingDraft,omitempty" json:"pendingDraft,omitempty"`
	LastAutosavedAt *time.Time `firestore:"lastAutosavedAt,omitempty" json:"lastAutosavedAt,omitempty"`
	ScheduledAt     *time.Time `firestore:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	PublishedAt     *time.Time `firestore:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt       time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

type VideoInput struct {
	Title        string         `json:"title" validate:"required,min=5,max=200"`
	Description  string         `json:"description" validate:"max=5000"`
	VideoURL     string         `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string         `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	PublicID     string         `json:"publicId,omitempty"`
	Category     string         `json:"category" validate:"required,max=80"`
	Duration     string         `json:"duration,omitempty"`
	Tags         []string       `json:"tags,omitempty" validate:"max=20,dive,max=40"`
	Status       content.Status `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	ScheduledAt  *time.Time     `json:"scheduledAt,omitempty"`
}

func (in *VideoInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	in.PublicID = strings.TrimSpace(in.PublicID)
	in.Category = strings.TrimSpace(in.Category)
	in.Duration = strings.TrimSpace(in.Duration)
}

// Snapshot is what the editor auto-saves for a video.
type Snapshot struct {
	Title       string   `firestore:"title" json:"title"`
	Description string   `firestore:"description" json:"description"`
	Category    string   `firestore:"category" json:"category"`
	Tags        []string `firestore:"tags" json:"tags"`
}

func (s *Snapshot) Trim() {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Category = strings.TrimSpace(s.Category)
}

type ScheduleInput struct {
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
}

type ListFilter struct {
	Status   content.Status
	Category string
	Limit    int
}

// m:ss, mm:ss or h:mm:ss
var durationRe = regexp.MustCompile(`^(\d{1,2}:)?[0-5]?\d:[0-5]\d$`)

func ValidDuration(s string) bool {
	return durationRe.MatchString(s)
}
