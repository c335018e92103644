package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// Update applies a partial profile update; omitted fields keep their values.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ProfileInput
	if !bindJSON(c, "ProfileHandler.Update", &req) {
		return
	}

	u, err := h.svc.Update(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.ExperienceInput
	if !bindJSON(c, "ProfileHandler.AddExperience", &req) {
		return
	}
	exp, err := h.svc.AddExperience(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exp)
}

func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.ExperienceInput
	if !bindJSON(c, "ProfileHandler.UpdateExperience", &req) {
		return
	}
	exp, err := h.svc.UpdateExperience(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

// DeleteExperience takes the entry id from the id query parameter.
func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteExperience(c.Request.Context(), userID, middleware.Role(c), c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) AddProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.ProjectInput
	if !bindJSON(c, "ProfileHandler.AddProject", &req) {
		return
	}
	p, err := h.svc.AddProject(c.Request.Context(), userID, middleware.Role(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProfileHandler) DeleteProject(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), userID, middleware.Role(c), c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
