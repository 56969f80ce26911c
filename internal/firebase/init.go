package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"io.pairapps.ouryear/internal/config"
)

// InitFirebase initializes and returns a Firebase app instance bound to the
// project's default storage bucket.
func InitFirebase(cfg *config.Config) (*firebase.App, error) {
	ctx := context.Background()

	fbConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	var app *firebase.App
	var err error

	if cfg.FirebaseServiceAccountPath != "" {
		// Initialize with service account file
		opt := option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
		app, err = firebase.NewApp(ctx, fbConfig, opt)
	} else {
		// Initialize with default credentials (useful for Google Cloud deployment)
		app, err = firebase.NewApp(ctx, fbConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	// Verify the storage client is reachable before the server starts taking
	// traffic; upload failures later are tolerated, a misconfigured bucket is not.
	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Storage client: %w", err)
	}
	if _, err := storageClient.DefaultBucket(); err != nil {
		return nil, fmt.Errorf("failed to resolve default storage bucket: %w", err)
	}

	return app, nil
}
