// Package storage talks to the object store holding order photos, item
// pictures and avatars. Objects are served out of a public/ prefix;
// replaced files are parked under temporary/ instead of being deleted.
package storage

import (
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
)

const (
	publicPrefix  = "public/"
	archivePrefix = "temporary/"

	uploadContentType = "image/jpeg"
)

type Client struct {
	client *gcs.Client
}

func NewClient(ctx context.Context) (*Client, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Upload writes data under public/<name> in the given bucket.
func (c *Client) Upload(ctx context.Context, bucket, name string, data []byte) error {
	w := c.client.Bucket(bucket).Object(publicPrefix + name).NewWriter(ctx)
	w.ContentType = uploadContentType

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing object %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing object %s: %w", name, err)
	}

	return nil
}

// SignedReadURL returns a short-lived GET URL for public/<name>.
func (c *Client) SignedReadURL(ctx context.Context, bucket, name string, ttl time.Duration) (string, error) {
	url, err := c.client.Bucket(bucket).SignedURL(publicPrefix+name, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(ttl),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("signing read url for %s: %w", name, err)
	}

	return url, nil
}

// MoveToArchive copies public/<name> to temporary/<name> and removes the
// public object, mirroring how replaced files are retired.
func (c *Client) MoveToArchive(ctx context.Context, bucket, name string) error {
	bkt := c.client.Bucket(bucket)
	src := bkt.Object(publicPrefix + name)
	dst := bkt.Object(archivePrefix + name)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return fmt.Errorf("archiving object %s: %w", name, err)
	}

	if err := src.Delete(ctx); err != nil {
		return fmt.Errorf("removing public object %s: %w", name, err)
	}

	return nil
}
