package services

import "retreat-backend/models"

// IsRoomEligible reports whether a participant may hold a room assignment.
// Policy: rooms are for female participants and the child department.
func IsRoomEligible(p models.Participant) bool {
	return p.Gender == models.GenderFemale || p.Department == models.DepartmentChild
}

// SelectableRooms filters rooms down to the ones a participant may pick:
// every room with a free slot, plus the room they currently hold (even when
// full), so the current choice stays visible and can be cleanly deselected.
// occupancy maps room id to its derived booked count; rooms missing from the
// map count as empty.
func SelectableRooms(rooms []models.Room, occupancy map[string]int, currentRoomID *string) []models.Room {
	selectable := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		room.Booked = occupancy[room.ID]
		if room.Booked < room.Capacity {
			selectable = append(selectable, room)
			continue
		}
		if currentRoomID != nil && *currentRoomID == room.ID {
			selectable = append(selectable, room)
		}
	}
	return selectable
}
