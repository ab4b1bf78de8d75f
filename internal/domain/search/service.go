// Package search runs substring search over the published catalogue. Every published article,
// video and FAQ is loaded (through the optional Redis cache) and matched in memory.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"brainhints/backend/internal/cache"
	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/faq"
	"brainhints/backend/internal/domain/video"
	"brainhints/backend/internal/textutil"
)

const snippetLen = 160

type ArticleSource interface {
	ListPublished(ctx context.Context) ([]article.Article, error)
}

type VideoSource interface {
	ListPublished(ctx context.Context) ([]video.Video, error)
}

type FAQSource interface {
	ListPublished(ctx context.Context) ([]faq.FAQ, error)
}

type Sources struct {
	Articles ArticleSource
	Videos   VideoSource
	FAQs     FAQSource
}

type Service struct {
	src   Sources
	cache *cache.Cache
	ttl   time.Duration
}

func NewService(src Sources, c *cache.Cache, ttl time.Duration) *Service {
	return &Service{src: src, cache: c, ttl: ttl}
}

// Search matches q case-insensitively against each type's searchable fields. A blank query
// returns no results. Exact title matches rank first, then titles containing q, then the rest,
// each group alphabetical by title.
func (s *Service) Search(ctx context.Context, q Query) ([]Result, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	if needle == "" {
		return []Result{}, nil
	}
	if q.Type != "" && !q.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrBadRequest, q.Type)
	}

	docs, err := s.load(ctx, q.Type)
	if err != nil {
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(q.Category))
	hits := make([]Result, 0)
	for _, d := range docs {
		if category != "" && strings.ToLower(d.result.Category) != category {
			continue
		}
		if d.matches(needle) {
			hits = append(hits, d.result)
		}
	}

	Rank(hits, needle)
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits, nil
}

// Rank orders results in place for the lowercased query.
func Rank(hits []Result, needle string) {
	tier := func(title string) int {
		t := strings.ToLower(title)
		switch {
		case t == needle:
			return 0
		case strings.Contains(t, needle):
			return 1
		}
		return 2
	}
	sort.SliceStable(hits, func(i, j int) bool {
		ti, tj := tier(hits[i].Title), tier(hits[j].Title)
		if ti != tj {
			return ti < tj
		}
		return strings.ToLower(hits[i].Title) < strings.ToLower(hits[j].Title)
	})
}

// Categories lists every category in use by published content.
func (s *Service) Categories(ctx context.Context) ([]CategoryCount, error) {
	docs, err := s.load(ctx, "")
	if err != nil {
		return nil, err
	}

	byName := map[string]*CategoryCount{}
	for _, d := range docs {
		name := strings.TrimSpace(d.result.Category)
		if name == "" {
			continue
		}
		cc, ok := byName[name]
		if !ok {
			cc = &CategoryCount{Name: name}
			byName[name] = cc
		}
		switch d.result.Type {
		case content.TypeArticle:
			cc.Articles++
		case content.TypeVideo:
			cc.Videos++
		case content.TypeFAQ:
			cc.FAQs++
		}
		cc.Total++
	}

	out := make([]CategoryCount, 0, len(byName))
	for _, cc := range byName {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// load fetches the published sets concurrently. only limits the fetch to one type.
func (s *Service) load(ctx context.Context, only content.Type) ([]doc, error) {
	var (
		arts []article.Article
		vids []video.Video
		faqs []faq.FAQ
	)

	g, ctx := errgroup.WithContext(ctx)
	if s.src.Articles != nil && (only == "" || only == content.TypeArticle) {
		g.Go(func() error {
			return s.cache.CacheAside(ctx, cache.KeyPublishedArticles, &arts, s.ttl, func() error {
				var err error
				arts, err = s.src.Articles.ListPublished(ctx)
				return err
			})
		})
	}
	if s.src.Videos != nil && (only == "" || only == content.TypeVideo) {
		g.Go(func() error {
			return s.cache.CacheAside(ctx, cache.KeyPublishedVideos, &vids, s.ttl, func() error {
				var err error
				vids, err = s.src.Videos.ListPublished(ctx)
				return err
			})
		})
	}
	if s.src.FAQs != nil && (only == "" || only == content.TypeFAQ) {
		g.Go(func() error {
			return s.cache.CacheAside(ctx, cache.KeyPublishedFAQs, &faqs, s.ttl, func() error {
				var err error
				faqs, err = s.src.FAQs.ListPublished(ctx)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load published content: %w", err)
	}

	docs := make([]doc, 0, len(arts)+len(vids)+len(faqs))
	for _, a := range arts {
		snippet := a.Excerpt
		if snippet == "" {
			snippet = textutil.Excerpt(a.Content, snippetLen)
		}
		docs = append(docs, doc{
			result: Result{
				Type: content.TypeArticle, ID: a.ID, Title: a.Title, Slug: a.Slug,
				Snippet: snippet, Category: a.Category, Tags: nonNil(a.Tags),
			},
			fields: append([]string{a.Title, textutil.PlainText(a.Content), a.Excerpt, a.Category, a.AuthorName}, a.Tags...),
		})
	}
	for _, v := range vids {
		docs = append(docs, doc{
			result: Result{
				Type: content.TypeVideo, ID: v.ID, Title: v.Title, Slug: v.Slug,
				Snippet: textutil.Excerpt(v.Description, snippetLen), Category: v.Category, Tags: nonNil(v.Tags),
			},
			fields: append([]string{v.Title, v.Description, v.Category}, v.Tags...),
		})
	}
	for _, f := range faqs {
		docs = append(docs, doc{
			result: Result{
				Type: content.TypeFAQ, ID: f.ID, Title: f.Question,
				Snippet: textutil.Excerpt(f.Answer, snippetLen), Category: f.Category, Tags: nonNil(f.Tags),
			},
			fields: append([]string{f.Question, textutil.PlainText(f.Answer), f.Category}, f.Tags...),
		})
	}
	return docs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
