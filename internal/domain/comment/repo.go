package comment

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
	return r.fs.Collection("comments")
}

func (r *Repo) Create(ctx context.Context, c Comment) (*Comment, error) {
	ref := r.col().NewDoc()
	c.ID = ref.ID
	if _, err := ref.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &c, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Comment, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	var c Comment
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to parse comment: %w", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// ListByContent returns every comment on a content item, deleted ones included.
func (r *Repo) ListByContent(ctx context.Context, ref content.Ref) ([]Comment, error) {
	it := r.col().
		Where("contentType", "==", string(ref.Type)).
		Where("contentId", "==", ref.ID).
		Documents(ctx)
	defer it.Stop()

	out := []Comment{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		var c Comment
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	_, err := r.col().Doc(id).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *Repo) SetLike(ctx context.Context, id, uid string, like bool) error {
	var v interface{} = firestore.ArrayRemove(uid)
	if like {
		v = firestore.ArrayUnion(uid)
	}
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{{Path: "likes", Value: v}})
	if err != nil {
		return fmt.Errorf("failed to update likes: %w", err)
	}
	return nil
}
