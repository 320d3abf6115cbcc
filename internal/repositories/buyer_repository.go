package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// BuyerRepository defines the interface for buyer data operations. Listing
// always returns the whole collection; filtering and sorting happen in
// memory on top.
type BuyerRepository interface {
	ListBuyers(ctx context.Context) ([]models.Buyer, error)
	GetBuyer(ctx context.Context, id string) (*models.Buyer, error)
	CreateBuyer(ctx context.Context, fields map[string]interface{}) (string, error)
	UpdateBuyer(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteBuyer(ctx context.Context, id string) error
}

// FirestoreBuyerRepository implements BuyerRepository on the "buyers"
// collection.
type FirestoreBuyerRepository struct {
	client *firestore.Client
}

// NewFirestoreBuyerRepository creates a new FirestoreBuyerRepository.
func NewFirestoreBuyerRepository(client *firestore.Client) *FirestoreBuyerRepository {
	return &FirestoreBuyerRepository{client: client}
}

// ListBuyers streams the full buyers collection.
func (r *FirestoreBuyerRepository) ListBuyers(ctx context.Context) ([]models.Buyer, error) {
	it := r.client.Collection("buyers").Documents(ctx)
	defer it.Stop()

	var buyers []models.Buyer
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var b models.Buyer
		if err := doc.DataTo(&b); err != nil {
			return nil, err
		}
		b.ID = doc.Ref.ID
		buyers = append(buyers, b)
	}
	return buyers, nil
}

// GetBuyer retrieves a buyer by document id.
func (r *FirestoreBuyerRepository) GetBuyer(ctx context.Context, id string) (*models.Buyer, error) {
	doc, err := r.client.Collection("buyers").Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	var b models.Buyer
	if err := doc.DataTo(&b); err != nil {
		return nil, err
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

// CreateBuyer writes a new buyer document and returns its id.
func (r *FirestoreBuyerRepository) CreateBuyer(ctx context.Context, fields map[string]interface{}) (string, error) {
	ref, _, err := r.client.Collection("buyers").Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateBuyer merges the given fields into an existing document. Fields not
// present in the map keep their stored values; concurrent edits are
// last-write-wins.
func (r *FirestoreBuyerRepository) UpdateBuyer(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := r.client.Collection("buyers").Doc(id).Set(ctx, fields, firestore.MergeAll)
	return notFound(err)
}

// DeleteBuyer removes the buyer document. Dependent followups are deleted
// separately by the followup repository before this is called.
func (r *FirestoreBuyerRepository) DeleteBuyer(ctx context.Context, id string) error {
	_, err := r.client.Collection("buyers").Doc(id).Delete(ctx)
	return err
}
