package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/models"
	pgrepo "github.com/Ethansurfas/launchpad/internal/repositories/postgres"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// List serves GET /jobs?type=&search=.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context(), pgrepo.JobFilter{
		Type:   models.JobType(c.Query("type")),
		Search: c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.JobInput
	if !bindJSON(c, "JobHandler.Create", &req) {
		return
	}
	job, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.JobInput
	if !bindJSON(c, "JobHandler.Update", &req) {
		return
	}
	job, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Mine serves GET /employer/jobs, including closed postings.
func (h *JobHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobs, err := h.svc.ListForEmployer(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
