package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

const wordsPerMinute = 200

// PlainText strips markup from an HTML fragment and collapses whitespace.
// Script and style bodies are dropped.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	s := string(name)
	return s == "script" || s == "style"
}

// WordCount counts whitespace separated words in the text of an HTML fragment.
func WordCount(fragment string) int {
	return len(strings.Fields(PlainText(fragment)))
}

// ReadTime returns the estimated reading time in minutes, rounded up. Empty content reads in 0.
func ReadTime(fragment string) int {
	words := WordCount(fragment)
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Excerpt returns the first max runes of the fragment's text, cut at a word boundary.
func Excerpt(fragment string, max int) string {
	text := PlainText(fragment)
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return text
	}
	cut := string(r[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
