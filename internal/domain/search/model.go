package search

import (
	"strings"

	"brainhints/backend/internal/domain/content"
)

type Query struct {
	Q        string
	Type     content.Type
	Category string
	Limit    int
}

type Result struct {
	Type     content.Type `json:"type"`
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Slug     string       `json:"slug,omitempty"`
	Snippet  string       `json:"snippet"`
	Category string       `json:"category"`
	Tags     []string     `json:"tags"`
}

// CategoryCount is one browse-page category with its published content counts.
type CategoryCount struct {
	Name     string `json:"name"`
	Articles int    `json:"articles"`
	Videos   int    `json:"videos"`
	FAQs     int    `json:"faqs"`
	Total    int    `json:"total"`
}

// doc is the searchable view of one published item. fields are matched, title ranks.
type doc struct {
	result Result
	fields []string
}

func (d doc) matches(q string) bool {
	for _, f := range d.fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
