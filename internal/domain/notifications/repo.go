package notifications

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore batch limit is 500 writes; commit early.
const batchSize = 450

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("notifications")
}

func (r *Repo) Create(ctx context.Context, n Notification) (string, error) {
	ref := r.col().NewDoc()
	n.ID = ref.ID
	if _, err := ref.Create(ctx, n); err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return ref.ID, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Notification, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	var n Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to parse notification: %w", err)
	}
	n.ID = doc.Ref.ID
	return &n, nil
}

func (r *Repo) List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]Notification, error) {
	q := r.col().Where("userId", "==", uid)
	if unreadOnly {
		q = q.Where("read", "==", false)
	}
	it := q.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer it.Stop()

	out := []Notification{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get notifications: %w", err)
		}
		var n Notification
		if err := doc.DataTo(&n); err != nil {
			continue
		}
		n.ID = doc.Ref.ID
		out = append(out, n)
	}
	return out, nil
}

func (r *Repo) CountUnread(ctx context.Context, uid string) (int64, error) {
	it := r.col().Where("userId", "==", uid).Where("read", "==", false).Select().Documents(ctx)
	defer it.Stop()

	var n int64
	for {
		_, err := it.Next()
		if err == iterator.Done {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count notifications: %w", err)
		}
		n++
	}
}

func (r *Repo) MarkRead(ctx context.Context, id string, at time.Time) error {
	_, err := r.col().Doc(id).Set(ctx, map[string]interface{}{
		"read":   true,
		"readAt": at,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (r *Repo) MarkAllRead(ctx context.Context, uid string, at time.Time) (int, error) {
	it := r.col().Where("userId", "==", uid).Where("read", "==", false).Documents(ctx)
	defer it.Stop()

	batch := r.fs.Batch()
	pending, count := 0, 0
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to get notifications: %w", err)
		}

		batch.Set(doc.Ref, map[string]interface{}{
			"read":   true,
			"readAt": at,
		}, firestore.MergeAll)
		pending++

		if pending == batchSize {
			if _, err := batch.Commit(ctx); err != nil {
				return count, fmt.Errorf("failed to mark notifications as read: %w", err)
			}
			count += pending
			pending = 0
			batch = r.fs.Batch()
		}
	}

	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return count, fmt.Errorf("failed to mark notifications as read: %w", err)
		}
		count += pending
	}
	return count, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
