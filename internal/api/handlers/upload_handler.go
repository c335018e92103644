package handlers

import (
	"errors"
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	svc services.UploadService
}

func NewUploadHandler(svc services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload accepts multipart form-data with a file part and a type field and
// returns the public URL of the stored object.
func (h *UploadHandler) Upload(c *gin.Context) {
	const op = "UploadHandler.Upload"
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// one extra megabyte for the other form parts
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "File size must be less than 5MB", err))
			return
		}
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "No file provided", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "No file provided", err))
		return
	}
	defer f.Close()

	url, err := h.svc.Upload(c.Request.Context(), services.UploadInput{
		UserID:      userID,
		Type:        c.PostForm("type"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
