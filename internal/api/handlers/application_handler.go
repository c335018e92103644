package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.ApplyInput
	if !bindJSON(c, "ApplicationHandler.Apply", &req) {
		return
	}
	app, err := h.svc.Apply(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	apps, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Applicants serves GET /employer/applicants?job_id=.
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	apps, err := h.svc.ListApplicants(c.Request.Context(), userID, c.Query("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

type UpdateApplicationStatusRequest struct {
	ApplicationID string                   `json:"application_id" binding:"required"`
	Status        models.ApplicationStatus `json:"status" binding:"required"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateApplicationStatusRequest
	if !bindJSON(c, "ApplicationHandler.UpdateStatus", &req) {
		return
	}
	app, err := h.svc.UpdateStatus(c.Request.Context(), userID, req.ApplicationID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
