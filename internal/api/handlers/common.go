package handlers

import (
	"errors"
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError renders err as the API error body. Internal failures are
// recorded on the context for the request logger and answered generically.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := utils.CodeOf(err)
	status := utils.HTTPStatus(err)
	msg := http.StatusText(status)

	var ae *utils.AppError
	if code != utils.CodeInternal && errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}
	c.JSON(status, APIError{Code: code, Message: msg})
}

func requireUserID(c *gin.Context) (string, bool) {
	if id := middleware.UserID(c); id != "" {
		return id, true
	}
	writeError(c, utils.Unauthorized("Auth"))
	return "", false
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}
