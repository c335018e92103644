package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Ethansurfas/launchpad/internal/metrics"
	"github.com/Ethansurfas/launchpad/internal/storage"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gabriel-vasile/mimetype"
)

const MaxUploadBytes = 5 << 20

// sniffBytes matches mimetype's default detection window.
const sniffBytes = 3072

var uploadTypes = map[string]bool{
	"resume":      true,
	"coverLetter": true,
	"transcript":  true,
	"logo":        true,
	"other":       true,
}

// allowedUploads maps a declared content type to the sniffed types that may
// back it. An empty list accepts any content.
var allowedUploads = map[string][]string{
	"application/pdf":    {"application/pdf"},
	"application/msword": {"application/msword", "application/x-ole-storage"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip",
	},
	"image/jpeg": {"image/jpeg"},
	"image/png":  {"image/png"},
	"image/webp": {"image/webp"},
	"text/plain": nil,
}

type UploadInput struct {
	UserID      string
	Type        string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
}

type uploadService struct {
	store   storage.Uploader
	timeout time.Duration
	now     func() time.Time
}

func NewUploadService(store storage.Uploader, timeout time.Duration) UploadService {
	return &uploadService{store: store, timeout: timeout, now: time.Now}
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (string, error) {
	const op = "UploadService.Upload"

	if in.UserID == "" {
		return "", utils.Unauthorized(op)
	}
	if in.Body == nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "No file provided", nil)
	}
	if !uploadTypes[in.Type] {
		return "", utils.E(utils.CodeInvalidArgument, op, "Invalid upload type", nil)
	}

	declared := baseContentType(in.ContentType)
	sniffable, ok := allowedUploads[declared]
	if !ok {
		return "", utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("File type %s not allowed. Use PDF, Word, images, or text files.", in.ContentType), nil)
	}
	if in.Size <= 0 || in.Size > MaxUploadBytes {
		return "", utils.E(utils.CodeInvalidArgument, op, "File size must be less than 5MB", nil)
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", utils.E(utils.CodeInvalidArgument, op, "failed to read upload", err)
	}
	head = head[:n]
	if len(sniffable) > 0 && !sniffedAs(mimetype.Detect(head), sniffable) {
		return "", utils.E(utils.CodeInvalidArgument, op, "File content does not match its type", nil)
	}

	key := objectKey(in.UserID, in.Type, in.Filename, s.now())

	uctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	body := io.MultiReader(bytes.NewReader(head), in.Body)
	start := time.Now()
	url, err := s.store.Upload(uctx, key, declared, body, in.Size)
	metrics.ObserveProvider("storage", "upload", start, err)
	if err != nil {
		return "", providerError(op, "Upload failed", err)
	}
	return url, nil
}

func objectKey(userID, typ, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return userID + "/" + typ + "-" + strconv.FormatInt(at.UnixMilli(), 10) + ext
}

func baseContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// sniffedAs reports whether m or one of its parents is in allowed.
func sniffedAs(m *mimetype.MIME, allowed []string) bool {
	for ; m != nil; m = m.Parent() {
		for _, a := range allowed {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}
