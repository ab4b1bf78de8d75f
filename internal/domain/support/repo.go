package support

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("supportTickets")
}

func (r *Repo) Create(ctx context.Context, t Ticket) (*Ticket, error) {
	ref := r.col().NewDoc()
	t.ID = ref.ID
	if _, err := ref.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &t, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Ticket, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	var t Ticket
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to parse ticket: %w", err)
	}
	t.ID = doc.Ref.ID
	return &t, nil
}

// AppendResponse adds a response and optionally moves the status in one transaction.
func (r *Repo) AppendResponse(ctx context.Context, id string, resp Response, newStatus string) (*Ticket, error) {
	var out *Ticket
	ref := r.col().Doc(id)
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: ticket %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		var t Ticket
		if err := doc.DataTo(&t); err != nil {
			return err
		}
		t.ID = doc.Ref.ID
		t.Responses = append(t.Responses, resp)
		t.UpdatedAt = resp.CreatedAt
		if newStatus != "" {
			t.Status = newStatus
		}
		out = &t
		return tx.Set(ref, t)
	})
	if err != nil {
		if IsErrNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add response: %w", err)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if _, err := r.col().Doc(id).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

// List returns tickets newest first. Empty uid or status means no filter.
func (r *Repo) List(ctx context.Context, uid, st string) ([]Ticket, error) {
	q := r.col().Query
	if uid != "" {
		q = q.Where("userId", "==", uid)
	}
	if st != "" {
		q = q.Where("status", "==", st)
	}
	it := q.Documents(ctx)
	defer it.Stop()

	out := []Ticket{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tickets: %w", err)
		}
		var t Ticket
		if err := doc.DataTo(&t); err != nil {
			continue
		}
		t.ID = doc.Ref.ID
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
