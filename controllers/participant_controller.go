package controllers

import (
	"net/http"
	"strconv"

	"retreat-backend/models"
	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

type ParticipantController struct {
	participants *services.ParticipantService
}

func NewParticipantController(participants *services.ParticipantService) *ParticipantController {
	return &ParticipantController{participants: participants}
}

// GET /api/participants
func (pc *ParticipantController) GetParticipants(c *gin.Context) {
	filter := services.ParticipantFilter{
		Gender:     c.Query("gender"),
		Department: c.Query("department"),
		Fellowship: c.Query("fellowship"),
		Presence:   c.Query("presence"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("feePaid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "feePaid must be true or false")
			return
		}
		filter.FeePaid = &paid
	}

	participants, err := pc.participants.GetAll(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, participants)
}

// GET /api/participants/:id
func (pc *ParticipantController) GetParticipantByID(c *gin.Context) {
	participant, err := pc.participants.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, participant)
}

// POST /api/participants
func (pc *ParticipantController) RegisterParticipant(c *gin.Context) {
	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "invalid request payload: "+err.Error())
		return
	}
	if err := pc.participants.Register(&participant); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, participant)
}

// PATCH /api/participants/:id
func (pc *ParticipantController) UpdateParticipant(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "invalid request payload: "+err.Error())
		return
	}
	participant, err := pc.participants.Update(c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, participant)
}

// PATCH /api/participants/:id/presence
func (pc *ParticipantController) SetPresence(c *gin.Context) {
	var req struct {
		Presence string `json:"presence" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "presence is required")
		return
	}
	if err := pc.participants.SetPresence(c.Param("id"), req.Presence); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"presence": req.Presence})
}

// PATCH /api/participants/:id/fee
func (pc *ParticipantController) SetFeePaid(c *gin.Context) {
	var req struct {
		Paid *bool `json:"paid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "paid is required")
		return
	}
	if err := pc.participants.SetFeePaid(c.Param("id"), *req.Paid); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"feePaid": *req.Paid})
}

// GET /api/participants/:id/eligibility
func (pc *ParticipantController) GetEligibility(c *gin.Context) {
	participant, err := pc.participants.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"eligible": services.IsRoomEligible(*participant)})
}

// DELETE /api/participants/:id — explicit admin removal.
func (pc *ParticipantController) DeleteParticipant(c *gin.Context) {
	if err := pc.participants.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
