package user

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) doc(uid string) *firestore.DocumentRef {
	return r.fs.Collection("users").Doc(uid)
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	var p Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if p.UID == "" {
		p.UID = uid
	}
	return &p, nil
}

// Merge writes only the given fields and creates the document when missing.
func (r *Repo) Merge(ctx context.Context, uid string, fields map[string]any) error {
	fields["uid"] = uid
	if _, ok := fields["updatedAt"]; !ok {
		fields["updatedAt"] = time.Now().UTC()
	}
	if _, err := r.doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
