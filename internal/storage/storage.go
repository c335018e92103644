package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

type Uploader interface {
	// Upload stores r under objectName and returns a URL the frontend can fetch.
	Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (publicURL string, err error)
}

// objectURL joins base, bucket and an escaped object path.
func objectURL(base, bucket, objectName string) string {
	segs := strings.Split(objectName, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.Join(segs, "/")
}
