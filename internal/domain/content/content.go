// Package content holds the identifiers shared by every kind of help-center content.
package content

import (
	"strings"

	"brainhints/backend/internal/validate"
)

type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
	TypeFAQ     Type = "faq"
)

var Types = []Type{TypeArticle, TypeVideo, TypeFAQ}

func (t Type) Valid() bool {
	switch t {
	case TypeArticle, TypeVideo, TypeFAQ:
		return true
	}
	return false
}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Ref points at one piece of content.
type Ref struct {
	Type Type   `firestore:"contentType" json:"contentType"`
	ID   string `firestore:"contentId" json:"contentId"`
}

func (r Ref) Valid() bool {
	return r.Type.Valid() && validate.DocID(strings.TrimSpace(r.ID))
}

func (r Ref) String() string { return string(r.Type) + "/" + r.ID }
