package controllers

import (
	"net/http"

	"retreat-backend/models"
	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	groups *services.GroupService
}

func NewGroupController(groups *services.GroupService) *GroupController {
	return &GroupController{groups: groups}
}

// GET /api/groups
func (gc *GroupController) GetGroups(c *gin.Context) {
	groups, err := gc.groups.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, groups)
}

// GET /api/groups/:id — includes the member roster.
func (gc *GroupController) GetGroupByID(c *gin.Context) {
	group, err := gc.groups.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, group)
}

// POST /api/groups
func (gc *GroupController) CreateGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "invalid request payload: "+err.Error())
		return
	}
	if err := gc.groups.Create(&group); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, group)
}

// PATCH /api/groups/:id
func (gc *GroupController) UpdateGroup(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "invalid request payload: "+err.Error())
		return
	}
	group, err := gc.groups.Update(c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, group)
}

// DELETE /api/groups/:id
func (gc *GroupController) DeleteGroup(c *gin.Context) {
	if err := gc.groups.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// POST /api/groups/:id/members
func (gc *GroupController) AddMember(c *gin.Context) {
	var req struct {
		ParticipantID string `json:"participantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "participantId is required")
		return
	}
	if err := gc.groups.AddMember(c.Param("id"), req.ParticipantID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"added": true})
}

// DELETE /api/groups/:id/members/:participantId
func (gc *GroupController) RemoveMember(c *gin.Context) {
	if err := gc.groups.RemoveMember(c.Param("id"), c.Param("participantId")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"removed": true})
}
