package services

import (
	"context"
	"testing"

	"retreat-backend/models"
)

func TestCapacityLedgerCountsIgnorePresence(t *testing.T) {
	store := NewMemoryStore()
	ledger := NewCapacityLedger(store)
	ctx := context.Background()

	roomID := "room-a"
	store.AddRoom(models.Room{ID: roomID, RoomNumber: "A", Capacity: 3})

	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", Presence: models.PresencePresent, RoomID: &roomID})
	// Absent participants still hold their slot until explicitly unassigned.
	store.AddParticipant(models.Participant{ID: "p2", Name: "Beth", Presence: models.PresenceAbsent, RoomID: &roomID})
	store.AddParticipant(models.Participant{ID: "p3", Name: "Cara", Presence: models.PresencePresent})

	booked, err := ledger.BookedCount(ctx, roomID)
	if err != nil {
		t.Fatalf("BookedCount: %v", err)
	}
	if booked != 2 {
		t.Fatalf("BookedCount = %d, want 2", booked)
	}

	available, err := ledger.AvailableCapacity(ctx, roomID)
	if err != nil {
		t.Fatalf("AvailableCapacity: %v", err)
	}
	if available != 1 {
		t.Fatalf("AvailableCapacity = %d, want 1", available)
	}
}

func TestAvailableCapacityClampsAtZero(t *testing.T) {
	store := NewMemoryStore()
	ledger := NewCapacityLedger(store)
	ctx := context.Background()

	roomID := "room-a"
	store.AddRoom(models.Room{ID: roomID, RoomNumber: "A", Capacity: 1})
	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", RoomID: &roomID})
	store.AddParticipant(models.Participant{ID: "p2", Name: "Beth", RoomID: &roomID})

	available, err := ledger.AvailableCapacity(ctx, roomID)
	if err != nil {
		t.Fatalf("AvailableCapacity: %v", err)
	}
	if available != 0 {
		t.Fatalf("AvailableCapacity = %d, want 0 for oversubscribed room", available)
	}
}

func TestAvailableCapacityUnknownRoom(t *testing.T) {
	ledger := NewCapacityLedger(NewMemoryStore())
	if _, err := ledger.AvailableCapacity(context.Background(), "nowhere"); err != ErrRoomNotFound {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestBookedCountOf(t *testing.T) {
	roomA, roomB := "room-a", "room-b"
	participants := []models.Participant{
		{ID: "p1", RoomID: &roomA},
		{ID: "p2", RoomID: &roomA},
		{ID: "p3", RoomID: &roomB},
		{ID: "p4"},
	}
	if got := BookedCountOf(participants, roomA); got != 2 {
		t.Fatalf("BookedCountOf(roomA) = %d, want 2", got)
	}
	if got := BookedCountOf(participants, roomB); got != 1 {
		t.Fatalf("BookedCountOf(roomB) = %d, want 1", got)
	}
	if got := BookedCountOf(participants, "nowhere"); got != 0 {
		t.Fatalf("BookedCountOf(nowhere) = %d, want 0", got)
	}
}
