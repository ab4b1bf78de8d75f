package video

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "videos"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(collection)
}

func (r *Repo) Create(ctx context.Context, v Video) (*Video, error) {
	ref := r.col().NewDoc()
	if v.ID != "" {
		ref = r.col().Doc(v.ID)
	}
	v.ID = ref.ID
	if _, err := ref.Create(ctx, v); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: video %s already exists", ErrBadRequest, v.ID)
		}
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return &v, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Video, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: video %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	var v Video
	if err := doc.DataTo(&v); err != nil {
		return nil, fmt.Errorf("failed to parse video: %w", err)
	}
	v.ID = doc.Ref.ID
	return &v, nil
}

// Put writes the editable fields of an existing video; the view counters belong to RecordView.
func (r *Repo) Put(ctx context.Context, v Video) error {
	_, err := r.col().Doc(v.ID).Update(ctx, editableFields(v))
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: video %s", ErrNotFound, v.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func editableFields(v Video) []firestore.Update {
	return []firestore.Update{
		{Path: "title", Value: v.Title},
		{Path: "slug", Value: v.Slug},
		{Path: "description", Value: v.Description},
		{Path: "videoUrl", Value: v.VideoURL},
		{Path: "thumbnailUrl", Value: v.ThumbnailURL},
		{Path: "publicId", Value: v.PublicID},
		{Path: "category", Value: v.Category},
		{Path: "duration", Value: v.Duration},
		{Path: "tags", Value: v.Tags},
		{Path: "status", Value: string(v.Status)},
		{Path: "authorId", Value: v.AuthorID},
		{Path: "pendingDraft", Value: v.PendingDraft},
		{Path: "lastAutosavedAt", Value: v.LastAutosavedAt},
		{Path: "scheduledAt", Value: v.ScheduledAt},
		{Path: "publishedAt", Value: v.PublishedAt},
		{Path: "updatedAt", Value: v.UpdatedAt},
	}
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Video, error) {
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

	out := []Video{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list videos: %w", err)
		}
		var v Video
		if err := doc.DataTo(&v); err != nil {
			continue
		}
		v.ID = doc.Ref.ID
		out = append(out, v)
	}
	return out, nil
}

func (r *Repo) RecordView(ctx context.Context, id, uid string) (bool, error) {
	ref := r.col().Doc(id)
	counted := false
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counted = false
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: video %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		var v Video
		if err := doc.DataTo(&v); err != nil {
			return err
		}
		if uid != "" {
			for _, seen := range v.ViewedBy {
				if seen == uid {
					return nil
				}
			}
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
