package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// BlogPostRepository defines the interface for CMS article operations.
type BlogPostRepository interface {
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, fields map[string]interface{}) (string, error)
	UpdatePost(ctx context.Context, id string, fields map[string]interface{}) error
	DeletePost(ctx context.Context, id string) error
}

// FirestoreBlogPostRepository implements BlogPostRepository on the
// "blog_posts" collection.
type FirestoreBlogPostRepository struct {
	client *firestore.Client
}

// NewFirestoreBlogPostRepository creates a new FirestoreBlogPostRepository.
func NewFirestoreBlogPostRepository(client *firestore.Client) *FirestoreBlogPostRepository {
	return &FirestoreBlogPostRepository{client: client}
}

// ListPosts streams the full blog_posts collection.
func (r *FirestoreBlogPostRepository) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	it := r.client.Collection("blog_posts").Documents(ctx)
	defer it.Stop()

	var posts []models.BlogPost
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p models.BlogPost
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		posts = append(posts, p)
	}
	return posts, nil
}

// GetPost retrieves a post by document id.
func (r *FirestoreBlogPostRepository) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	doc, err := r.client.Collection("blog_posts").Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	var p models.BlogPost
	if err := doc.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// CreatePost writes a new post document and returns its id.
func (r *FirestoreBlogPostRepository) CreatePost(ctx context.Context, fields map[string]interface{}) (string, error) {
	ref := r.client.Collection("blog_posts").NewDoc()
	if _, err := ref.Set(ctx, fields); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdatePost merges the given fields into an existing post.
func (r *FirestoreBlogPostRepository) UpdatePost(ctx context.Context, id string, fields map[string]interface{}) error {
	_, err := r.client.Collection("blog_posts").Doc(id).Set(ctx, fields, firestore.MergeAll)
	return notFound(err)
}

// DeletePost removes the post document.
func (r *FirestoreBlogPostRepository) DeletePost(ctx context.Context, id string) error {
	_, err := r.client.Collection("blog_posts").Doc(id).Delete(ctx)
	return err
}
