package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/yaoyun631/team-me-crm-firebase/pkg/config"
)

// App holds the initialized Firestore client and the storage bucket.
type App struct {
	Firestore *firestore.Client
	Bucket    *gcs.BucketHandle
}

// InitFirebase initializes the Firebase app. Credentials come from the
// FIREBASE_CREDENTIALS environment variable (inline JSON, for hosted
// deploys) or fall back to the local service-account file; having neither
// is fatal for the caller.
func InitFirebase(ctx context.Context, cfg *config.Config) (*App, error) {
	opt, err := credentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.StorageBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default bucket: %w", err)
	}

	log.Println("Firebase app, Firestore and storage bucket initialized successfully!")
	return &App{Firestore: fs, Bucket: bucket}, nil
}

// Close releases the Firestore connection.
func (a *App) Close() {
	if a.Firestore != nil {
		if err := a.Firestore.Close(); err != nil {
			log.Printf("Error closing Firestore client: %v", err)
		}
	}
}

func credentialsOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.FirebaseCredentials != "" {
		return option.WithCredentialsJSON([]byte(cfg.FirebaseCredentials)), nil
	}
	if _, err := os.Stat(cfg.CredentialsFile); err == nil {
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	}
	return nil, fmt.Errorf("no Firebase credentials: set FIREBASE_CREDENTIALS or provide %s", cfg.CredentialsFile)
}
