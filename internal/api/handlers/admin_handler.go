package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Employers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	out, err := h.svc.EmployerStats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Reviews serves GET /admin/reviews. With company_id it returns both review
// kinds for that company, otherwise the caller's own career-center reviews.
func (h *AdminHandler) Reviews(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if companyID := c.Query("company_id"); companyID != "" {
		out, err := h.svc.CompanyReviews(c.Request.Context(), userID, companyID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}
	out, err := h.svc.MyReviews(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) UpsertReview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.CareerReviewInput
	if !bindJSON(c, "AdminHandler.UpsertReview", &req) {
		return
	}
	out, err := h.svc.UpsertReview(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
