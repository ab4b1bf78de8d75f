package comment

import (
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
)

type Comment struct {
	ID             string       `firestore:"id" json:"id"`
	ContentType    content.Type `firestore:"contentType" json:"contentType"`
	ContentID      string       `firestore:"contentId" json:"contentId"`
	AuthorID       string       `firestore:"authorId" json:"authorId"`
	AuthorName     string       `firestore:"authorName" json:"authorName"`
	AuthorPhotoURL string       `firestore:"authorPhotoUrl,omitempty" json:"authorPhotoUrl,omitempty"`
	Message        string       `firestore:"message" json:"message"`
	ParentID       string       `firestore:"parentId" json:"parentId,omitempty"`
	Likes          []string     `firestore:"likes" json:"likes"`
	Deleted        bool         `firestore:"deleted" json:"deleted"`
	Edited         bool         `firestore:"edited" json:"edited"`
	CreatedAt      time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

func (c Comment) Ref() content.Ref {
	return content.Ref{Type: c.ContentType, ID: c.ContentID}
}

func (c Comment) LikedBy(uid string) bool {
	for _, u := range c.Likes {
		if u == uid {
			return true
		}
	}
	return false
}

// Thread is a top-level comment with its replies.
type Thread struct {
	Comment
	LikeCount int      `json:"likeCount"`
	Replies   []Thread `json:"replies"`
}

type Author struct {
	UID      string
	Name     string
	PhotoURL string
	Admin    bool
}

type CreateCommentInput struct {
	ContentType content.Type `json:"contentType" validate:"required,oneof=article video faq"`
	ContentID   string       `json:"contentId" validate:"required,docid"`
	Message     string       `json:"message" validate:"required,max=2000"`
	ParentID    string       `json:"parentId,omitempty"`
}

func (in *CreateCommentInput) Trim() {
	in.ContentID = strings.TrimSpace(in.ContentID)
	in.Message = strings.TrimSpace(in.Message)
	in.ParentID = strings.TrimSpace(in.ParentID)
}

type UpdateCommentInput struct {
	Message string `json:"message" validate:"required,max=2000"`
}
