package faq

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"brainhints/backend/internal/domain/content"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("faqs")
}

func (r *Repo) Create(ctx context.Context, f FAQ) (*FAQ, error) {
	ref := r.col().NewDoc()
	f.ID = ref.ID
	if _, err := ref.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}
	return &f, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*FAQ, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: faq %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	var f FAQ
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to parse faq: %w", err)
	}
	f.ID = doc.Ref.ID
	return &f, nil
}

func (r *Repo) Put(ctx context.Context, f FAQ) error {
	if _, err := r.col().Doc(f.ID).Set(ctx, f); err != nil {
		return fmt.Errorf("failed to save faq: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, st content.Status, category string) ([]FAQ, error) {
	q := r.col().Query
	if st != "" {
		q = q.Where("status", "==", string(st))
	}
	if category != "" {
		q = q.Where("category", "==", category)
	}
	it := q.Documents(ctx)
	defer it.Stop()

	out := []FAQ{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list faqs: %w", err)
		}
		var f FAQ
		if err := doc.DataTo(&f); err != nil {
			continue
		}
		f.ID = doc.Ref.ID
		out = append(out, f)
	}
	return out, nil
}
