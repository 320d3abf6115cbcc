package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// FollowupRepository defines the interface for the contact logs attached
// to buyers and sellers. One instance serves one collection
// ("buyer_followups" keyed by buyer_id, or "seller_followups" keyed by
// seller_id).
type FollowupRepository interface {
	ListByParent(ctx context.Context, parentID string) ([]models.Followup, error)
	GetFollowup(ctx context.Context, id string) (*models.Followup, error)
	CreateFollowup(ctx context.Context, parentID string, fields map[string]interface{}) (string, error)
	UpdateFollowup(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteFollowup(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentID string) error
}

// FirestoreFollowupRepository implements FollowupRepository on one
// followup collection.
type FirestoreFollowupRepository struct {
	client      *firestore.Client
	collection  string
	parentField string
}

// NewFirestoreFollowupRepository creates a repository bound to the given
// collection and parent-id field name.
func NewFirestoreFollowupRepository(client *firestore.Client, collection, parentField string) *FirestoreFollowupRepository {
	return &FirestoreFollowupRepository{client: client, collection: collection, parentField: parentField}
}

// ListByParent retrieves every followup referencing the given parent id.
func (r *FirestoreFollowupRepository) ListByParent(ctx context.Context, parentID string) ([]models.Followup, error) {
	it := r.client.Collection(r.collection).Where(r.parentField, "==", parentID).Documents(ctx)
	defer it.Stop()

	var followups []models.Followup
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		f, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		followups = append(followups, *f)
	}
	return followups, nil
}

// GetFollowup retrieves a followup by document id.
func (r *FirestoreFollowupRepository) GetFollowup(ctx context.Context, id string) (*models.Followup, error) {
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return r.decode(doc)
}

// CreateFollowup writes a new followup referencing the parent id.
func (r *FirestoreFollowupRepository) CreateFollowup(ctx context.Context, parentID string, fields map[string]interface{}) (string, error) {
	data := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[r.parentField] = parentID

	ref, _, err := r.client.Collection(r.collection).Add(ctx, data)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateFollowup merges the given fields into an existing followup. The
// parent reference is never rewritten.
func (r *FirestoreFollowupRepository) UpdateFollowup(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := r.client.Collection(r.collection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	return notFound(err)
}

// DeleteFollowup removes a single followup.
func (r *FirestoreFollowupRepository) DeleteFollowup(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	return err
}

// DeleteByParent removes every followup referencing the parent id. There
// is no foreign-key enforcement in Firestore, so the cascade is an
// explicit scan-and-delete.
func (r *FirestoreFollowupRepository) DeleteByParent(ctx context.Context, parentID string) error {
	it := r.client.Collection(r.collection).Where(r.parentField, "==", parentID).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *FirestoreFollowupRepository) decode(doc *firestore.DocumentSnapshot) (*models.Followup, error) {
	var f models.Followup
	if err := doc.DataTo(&f); err != nil {
		return nil, err
	}
	f.ID = doc.Ref.ID
	if parent, err := doc.DataAt(r.parentField); err == nil {
		if s, ok := parent.(string); ok {
			f.ParentID = s
		}
	}
	return &f, nil
}
