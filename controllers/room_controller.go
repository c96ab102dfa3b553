package controllers

import (
	"net/http"

	"retreat-backend/models"
	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms       *services.RoomService
	assignments *services.AssignmentService
	ledger      *services.CapacityLedger
}

func NewRoomController(
	rooms *services.RoomService,
	assignments *services.AssignmentService,
	ledger *services.CapacityLedger,
) *RoomController {
	return &RoomController{rooms: rooms, assignments: assignments, ledger: ledger}
}

// GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/selectable?participantId=...
func (rc *RoomController) GetSelectableRooms(c *gin.Context) {
	participantID := c.Query("participantId")
	if participantID == "" {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "participantId is required")
		return
	}
	rooms, err := rc.assignments.SelectableRoomsFor(c.Request.Context(), participantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	room, err := rc.rooms.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GET /api/rooms/:id/occupants
func (rc *RoomController) GetRoomOccupants(c *gin.Context) {
	occupants, err := rc.rooms.Occupants(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, occupants)
}

// GET /api/rooms/:id/availability
func (rc *RoomController) GetRoomAvailability(c *gin.Context) {
	id := c.Param("id")
	booked, err := rc.ledger.BookedCount(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	available, err := rc.ledger.AvailableCapacity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"booked": booked, "available": available})
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "invalid request payload: "+err.Error())
		return
	}
	if err := rc.rooms.Create(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PATCH /api/rooms/:id — rename only; capacity has its own endpoint.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	var req struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "roomNumber is required")
		return
	}
	room, err := rc.rooms.UpdateNumber(c.Param("id"), req.RoomNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// PATCH /api/rooms/:id/capacity
func (rc *RoomController) ResizeRoom(c *gin.Context) {
	var req struct {
		Capacity *int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", "capacity is required")
		return
	}
	room, err := rc.assignments.ResizeRoom(c.Request.Context(), c.Param("id"), *req.Capacity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// Booked above capacity means the shrink left the room oversubscribed;
	// say so instead of absorbing it silently.
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room":           room,
		"oversubscribed": room.Booked > room.Capacity,
	})
}

// DELETE /api/rooms/:id — cascade-unassigns occupants first.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.assignments.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
