package controllers

import (
	"errors"
	"net/http"

	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinel errors onto HTTP statuses with
// stable codes. Capacity and concurrency conflicts both come back 409 but
// with different codes, so the UI can offer "pick another room" vs "retry".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrParticipantNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", "participant not found")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", "room not found")
	case errors.Is(err, services.ErrGroupNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", "group not found")
	case errors.Is(err, services.ErrRoomFull):
		utils.JSONErrorCode(c, http.StatusConflict, "room_full", "room is fully booked")
	case errors.Is(err, services.ErrDuplicateRoomNumber):
		utils.JSONErrorCode(c, http.StatusConflict, "duplicate", "room number already exists")
	case errors.Is(err, services.ErrConcurrentModification):
		utils.JSONErrorCode(c, http.StatusConflict, "conflict", "assignment changed concurrently, please retry")
	case errors.Is(err, services.ErrInvalidArgument):
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		utils.JSONErrorCode(c, http.StatusInternalServerError, "internal", err.Error())
	}
}
