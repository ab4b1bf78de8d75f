package article

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "articles"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, a Article) (*Article, error) {
	ref := r.col().NewDoc()
	a.ID = ref.ID
	if _, err := ref.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return &a, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Article, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	var a Article
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to parse article: %w", err)
	}
	a.ID = doc.Ref.ID
	return &a, nil
}

// Put writes the editable fields of an existing article. views and viewedBy are left to
// RecordView so a concurrent view is never overwritten by a stale copy.
func (r *Repo) Put(ctx context.Context, a Article) error {
	_, err := r.col().Doc(a.ID).Update(ctx, editableFields(a))
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: article %s", ErrNotFound, a.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

func editableFields(a Article) []firestore.Update {
	return []firestore.Update{
		{Path: "title", Value: a.Title},
		{Path: "slug", Value: a.Slug},
		{Path: "content", Value: a.Content},
		{Path: "excerpt", Value: a.Excerpt},
		{Path: "category", Value: a.Category},
		{Path: "tags", Value: a.Tags},
		{Path: "keywords", Value: a.Keywords},
		{Path: "featuredImage", Value: a.FeaturedImage},
		{Path: "authorId", Value: a.AuthorID},
		{Path: "authorName", Value: a.AuthorName},
		{Path: "status", Value: string(a.Status)},
		{Path: "readTime", Value: a.ReadTime},
		{Path: "pendingDraft", Value: a.PendingDraft},
		{Path: "lastAutosavedAt", Value: a.LastAutosavedAt},
		{Path: "scheduledAt", Value: a.ScheduledAt},
		{Path: "publishedAt", Value: a.PublishedAt},
		{Path: "updatedAt", Value: a.UpdatedAt},
	}
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Article, error) {
	q := r.col().Query
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	out := []Article{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list articles: %w", err)
		}
		var a Article
		if err := doc.DataTo(&a); err != nil {
			continue
		}
		a.ID = doc.Ref.ID
		out = append(out, a)
	}
	return out, nil
}

// RecordView bumps the counter once per signed-in user; anonymous views always count.
func (r *Repo) RecordView(ctx context.Context, id, uid string) (bool, error) {
	ref := r.col().Doc(id)
	counted := false
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counted = false
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: article %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		var a Article
		if err := doc.DataTo(&a); err != nil {
			return err
		}
		if uid != "" && contains(a.ViewedBy, uid) {
			return nil
		}
		updates := []firestore.Update{{Path: "views", Value: firestore.Increment(1)}}
		if uid != "" {
			updates = append(updates, firestore.Update{Path: "viewedBy", Value: firestore.ArrayUnion(uid)})
		}
		counted = true
		return tx.Update(ref, updates)
	})
	return counted, err
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
