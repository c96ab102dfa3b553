package controllers

import (
	"net/http"

	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	assignments *services.AssignmentService
}

func NewAssignmentController(assignments *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignments: assignments}
}

// POST /api/assignments
func (ac *AssignmentController) AssignRoom(c *gin.Context) {
	var req struct {
		ParticipantID string `json:"participantId" binding:"required"`
		RoomID        string `json:"roomId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "participantId and roomId are required")
		return
	}

	assignment, err := ac.assignments.Assign(c.Request.Context(), req.ParticipantID, req.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignment)
}

// DELETE /api/assignments/:participantId
func (ac *AssignmentController) UnassignRoom(c *gin.Context) {
	if err := ac.assignments.Unassign(c.Request.Context(), c.Param("participantId")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"unassigned": true})
}
