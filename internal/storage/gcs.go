package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
)

const (
	gcsPublicBase = "https://storage.googleapis.com"

	// objects up to this size are sent in one request instead of resumable chunks
	singleRequestLimit = 8 << 20
)

type GCSUploader struct {
	client *gcs.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: c, bucket: bucket}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

func (u *GCSUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	obj := u.client.Bucket(u.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if size > 0 && size <= singleRequestLimit {
		w.ChunkSize = 0
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	// documents are linked directly from profiles and applications
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", err
	}

	return objectURL(gcsPublicBase, u.bucket, objectName), nil
}
