package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"

	"io.pairapps.ouryear/internal/config"
)

// Uploader writes image bytes to the project's storage bucket and hands back
// publicly reachable URLs. Objects are never overwritten; name collisions
// surface as upload errors for the caller to handle.
type Uploader struct {
	bucket        *gcs.BucketHandle
	bucketName    string
	publicBaseURL string
}

// NewUploader creates an uploader backed by the Firebase default bucket.
func NewUploader(app *firebase.App, cfg *config.Config) (*Uploader, error) {
	client, err := app.Storage(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default bucket: %w", err)
	}

	return &Uploader{
		bucket:        bucket,
		bucketName:    cfg.StorageBucket,
		publicBaseURL: strings.TrimRight(cfg.StoragePublicBaseURL, "/"),
	}, nil
}

// Upload writes data under {folder}/{generated name} and returns the public
// URL. The object name combines a millisecond timestamp with a random suffix
// so concurrent uploads cannot collide in practice.
func (u *Uploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	if folder == "" {
		folder = "uploads"
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), extensionFor(contentType))
	objectPath := fmt.Sprintf("%s/%s", folder, name)

	// Refuse-on-conflict: never replace an existing object
	writer := u.bucket.Object(objectPath).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectPath, err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, u.bucketName, objectPath), nil
}

func randomSuffix() string {
	return strings.Split(uuid.New().String(), "-")[0]
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
