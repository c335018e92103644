package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/api/middleware"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Public serves GET /companies/:id. Reviews are only included for signed-in callers.
func (h *CompanyHandler) Public(c *gin.Context) {
	out, err := h.svc.Public(c.Request.Context(), c.Param("id"), middleware.UserID(c) != "")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CompanyHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	company, err := h.svc.Mine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	// null when the employer has not created a company yet
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.CompanyInput
	if !bindJSON(c, "CompanyHandler.Create", &req) {
		return
	}
	company, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.CompanyInput
	if !bindJSON(c, "CompanyHandler.Update", &req) {
		return
	}
	company, err := h.svc.Update(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
