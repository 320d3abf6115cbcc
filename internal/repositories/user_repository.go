package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// UserRepository defines the interface for back-office account lookups.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (string, error)
}

// FirestoreUserRepository implements UserRepository on the "users"
// collection.
type FirestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new FirestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) *FirestoreUserRepository {
	return &FirestoreUserRepository{client: client}
}

// GetUserByEmail looks up a user by exact email match.
func (r *FirestoreUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	it := r.client.Collection("users").Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

// CreateUser writes a new user document and returns its id.
func (r *FirestoreUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	ref, _, err := r.client.Collection("users").Add(ctx, user)
	if err != nil {
		return "", err
	}
	user.ID = ref.ID
	return ref.ID, nil
}
