package services

import (
	"context"

	"retreat-backend/models"
)

// CapacityLedger derives booked counts from participant room references.
// The count deliberately ignores presence: a slot stays held for an absent
// participant until someone explicitly unassigns them.
type CapacityLedger struct {
	store EntityStore
}

func NewCapacityLedger(store EntityStore) *CapacityLedger {
	return &CapacityLedger{store: store}
}

func (l *CapacityLedger) BookedCount(ctx context.Context, roomID string) (int, error) {
	return l.store.CountRoomOccupants(ctx, roomID)
}

func (l *CapacityLedger) AvailableCapacity(ctx context.Context, roomID string) (int, error) {
	room, err := l.store.GetRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	booked, err := l.store.CountRoomOccupants(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if avail := room.Capacity - booked; avail > 0 {
		return avail, nil
	}
	return 0, nil
}

// BookedCountOf counts room references in an already-loaded participant set.
func BookedCountOf(participants []models.Participant, roomID string) int {
	count := 0
	for i := range participants {
		if participants[i].RoomID != nil && *participants[i].RoomID == roomID {
			count++
		}
	}
	return count
}
