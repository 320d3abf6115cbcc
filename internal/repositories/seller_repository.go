package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// SellerRepository defines the interface for seller data operations.
type SellerRepository interface {
	ListSellers(ctx context.Context) ([]models.Seller, error)
	GetSeller(ctx context.Context, id string) (*models.Seller, error)
	CreateSeller(ctx context.Context, fields map[string]interface{}) (string, error)
	UpdateSeller(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteSeller(ctx context.Context, id string) error
}

// FirestoreSellerRepository implements SellerRepository on the "sellers"
// collection.
type FirestoreSellerRepository struct {
	client *firestore.Client
}

// NewFirestoreSellerRepository creates a new FirestoreSellerRepository.
func NewFirestoreSellerRepository(client *firestore.Client) *FirestoreSellerRepository {
	return &FirestoreSellerRepository{client: client}
}

// ListSellers streams the full sellers collection.
func (r *FirestoreSellerRepository) ListSellers(ctx context.Context) ([]models.Seller, error) {
	it := r.client.Collection("sellers").Documents(ctx)
	defer it.Stop()

	var sellers []models.Seller
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var s models.Seller
		if err := doc.DataTo(&s); err != nil {
			return nil, err
		}
		s.ID = doc.Ref.ID
		sellers = append(sellers, s)
	}
	return sellers, nil
}

// GetSeller retrieves a seller by document id.
func (r *FirestoreSellerRepository) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	doc, err := r.client.Collection("sellers").Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	var s models.Seller
	if err := doc.DataTo(&s); err != nil {
		return nil, err
	}
	s.ID = doc.Ref.ID
	return &s, nil
}

// CreateSeller writes a new seller document and returns its id.
func (r *FirestoreSellerRepository) CreateSeller(ctx context.Context, fields map[string]interface{}) (string, error) {
	ref, _, err := r.client.Collection("sellers").Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateSeller merges the given fields into an existing document.
func (r *FirestoreSellerRepository) UpdateSeller(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := r.client.Collection("sellers").Doc(id).Set(ctx, fields, firestore.MergeAll)
	return notFound(err)
}

// DeleteSeller removes the seller document.
func (r *FirestoreSellerRepository) DeleteSeller(ctx context.Context, id string) error {
	_, err := r.client.Collection("sellers").Doc(id).Delete(ctx)
	return err
}
