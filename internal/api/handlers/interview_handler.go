package handlers

import (
	"net/http"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviews services.InterviewService
	rooms      services.RoomService
	feedback   services.FeedbackService
}

func NewInterviewHandler(interviews services.InterviewService, rooms services.RoomService, feedback services.FeedbackService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, rooms: rooms, feedback: feedback}
}

func (h *InterviewHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req services.CreateInterviewInput
	if !bindJSON(c, "InterviewHandler.Create", &req) {
		return
	}
	iv, err := h.interviews.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	list, err := h.interviews.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	iv, err := h.interviews.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type UpdateInterviewRequest struct {
	Status models.InterviewStatus `json:"status" binding:"required"`
}

func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateInterviewRequest
	if !bindJSON(c, "InterviewHandler.UpdateStatus", &req) {
		return
	}
	iv, err := h.interviews.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type SelectSlotRequest struct {
	TimeSlotID string `json:"time_slot_id" binding:"required"`
}

func (h *InterviewHandler) SelectSlot(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SelectSlotRequest
	if !bindJSON(c, "InterviewHandler.SelectSlot", &req) {
		return
	}
	iv, err := h.interviews.SelectSlot(c.Request.Context(), userID, c.Param("id"), req.TimeSlotID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Events(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	events, err := h.interviews.History(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *InterviewHandler) Room(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	room, err := h.rooms.Join(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// Analyze runs the feedback pipeline synchronously; it can take minutes.
func (h *InterviewHandler) Analyze(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	res, err := h.feedback.Analyze(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
