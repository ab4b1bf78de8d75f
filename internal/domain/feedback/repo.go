package feedback

import (
	"context"
	"fmt"
	"sort"

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

func (r *Repo) contentCol() *firestore.CollectionRef {
	return r.fs.Collection("contentFeedback")
}

func (r *Repo) siteCol() *firestore.CollectionRef {
	return r.fs.Collection("feedback")
}

func (r *Repo) GetContent(ctx context.Context, id string) (*ContentFeedback, error) {
	doc, err := r.contentCol().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: feedback %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	var f ContentFeedback
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	f.ID = doc.Ref.ID
	return &f, nil
}

func (r *Repo) PutContent(ctx context.Context, f ContentFeedback) error {
	if _, err := r.contentCol().Doc(f.ID).Set(ctx, f); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (r *Repo) DeleteContent(ctx context.Context, id string) error {
	if _, err := r.contentCol().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}

func (r *Repo) ListContent(ctx context.Context, ref content.Ref) ([]ContentFeedback, error) {
	it := r.contentCol().
		Where("contentType", "==", string(ref.Type)).
		Where("contentId", "==", ref.ID).
		Documents(ctx)
	defer it.Stop()

	out := []ContentFeedback{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list feedback: %w", err)
		}
		var f ContentFeedback
		if err := doc.DataTo(&f); err != nil {
			continue
		}
		f.ID = doc.Ref.ID
		out = append(out, f)
	}
	return out, nil
}

func (r *Repo) CreateSite(ctx context.Context, f Feedback) (*Feedback, error) {
	ref := r.siteCol().NewDoc()
	f.ID = ref.ID
	if _, err := ref.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &f, nil
}

func (r *Repo) GetSite(ctx context.Context, id string) (*Feedback, error) {
	doc, err := r.siteCol().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: feedback %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	var f Feedback
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	f.ID = doc.Ref.ID
	return &f, nil
}

func (r *Repo) PutSite(ctx context.Context, f Feedback) error {
	if _, err := r.siteCol().Doc(f.ID).Set(ctx, f); err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	return nil
}

func (r *Repo) ListSite(ctx context.Context, f SiteFilter) ([]Feedback, error) {
	q := r.siteCol().Query
	if f.Status != "" {
		q = q.Where("status", "==", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type", "==", f.Type)
	}
	it := q.Documents(ctx)
	defer it.Stop()

	out := []Feedback{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list feedback: %w", err)
		}
		var fb Feedback
		if err := doc.DataTo(&fb); err != nil {
			continue
		}
		fb.ID = doc.Ref.ID
		out = append(out, fb)
	}

	// newest first, sorted here to avoid a composite index per filter
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
