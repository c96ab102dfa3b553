package services

import (
	"context"
	"errors"
	"testing"

	"retreat-backend/models"
)

func TestMemoryStoreSetParticipantRoomCAS(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann"})
	roomA, roomB := "room-a", "room-b"

	// Expect nil matches an unassigned participant.
	if err := store.SetParticipantRoom(ctx, "p1", &roomA, nil); err != nil {
		t.Fatalf("assign from nil: %v", err)
	}

	// Stale expectation is rejected.
	if err := store.SetParticipantRoom(ctx, "p1", &roomB, nil); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("stale nil expectation: err = %v, want ErrConcurrentModification", err)
	}
	if err := store.SetParticipantRoom(ctx, "p1", &roomB, &roomB); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("stale room expectation: err = %v, want ErrConcurrentModification", err)
	}

	// Matching expectation moves the reference.
	if err := store.SetParticipantRoom(ctx, "p1", &roomB, &roomA); err != nil {
		t.Fatalf("reassign with correct expectation: %v", err)
	}
	p, err := store.GetParticipant(ctx, "p1")
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}
	if p.RoomID == nil || *p.RoomID != roomB {
		t.Fatalf("room ref = %v, want room-b", p.RoomID)
	}
	if p.RoomAssignedAt == nil {
		t.Fatalf("RoomAssignedAt not set on assignment")
	}

	// Clearing drops the assignment timestamp too.
	if err := store.SetParticipantRoom(ctx, "p1", nil, &roomB); err != nil {
		t.Fatalf("clear: %v", err)
	}
	p, _ = store.GetParticipant(ctx, "p1")
	if p.RoomID != nil || p.RoomAssignedAt != nil {
		t.Fatalf("clear left ref=%v assignedAt=%v", p.RoomID, p.RoomAssignedAt)
	}

	if err := store.SetParticipantRoom(ctx, "ghost", &roomA, nil); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("unknown participant: err = %v, want ErrParticipantNotFound", err)
	}
}

func TestMemoryStoreOccupantOrdering(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	roomA := "room-a"

	store.AddRoom(models.Room{ID: roomA, RoomNumber: "A", Capacity: 3})
	for _, id := range []string{"p3", "p1", "p2"} {
		store.AddParticipant(models.Participant{ID: id, Name: id})
	}

	// Assign in a known order; the occupant list must follow it.
	for _, id := range []string{"p3", "p1", "p2"} {
		if err := store.SetParticipantRoom(ctx, id, &roomA, nil); err != nil {
			t.Fatalf("assign %s: %v", id, err)
		}
	}

	occupants, err := store.ListRoomOccupants(ctx, roomA)
	if err != nil {
		t.Fatalf("list occupants: %v", err)
	}
	want := []string{"p3", "p1", "p2"}
	if len(occupants) != len(want) {
		t.Fatalf("got %d occupants, want %d", len(occupants), len(want))
	}
	for i, id := range want {
		if occupants[i].ID != id {
			t.Fatalf("occupants[%d] = %s, want %s (assignment order must win over id order)", i, occupants[i].ID, id)
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann"})
	p, err := store.GetParticipant(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.Name = "mutated"

	again, _ := store.GetParticipant(ctx, "p1")
	if again.Name != "Ann" {
		t.Fatalf("store handed out a shared pointer; name = %q", again.Name)
	}

	store.AddRoom(models.Room{ID: "r1", RoomNumber: "101", Capacity: 2})
	r, _ := store.GetRoom(ctx, "r1")
	r.Capacity = 99
	againRoom, _ := store.GetRoom(ctx, "r1")
	if againRoom.Capacity != 2 {
		t.Fatalf("room copy not isolated; capacity = %d", againRoom.Capacity)
	}
}

func TestMemoryStoreDeleteRoom(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.AddRoom(models.Room{ID: "r1", RoomNumber: "101", Capacity: 2})
	if err := store.DeleteRoom(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetRoom(ctx, "r1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("get after delete: err = %v, want ErrRoomNotFound", err)
	}
	if err := store.DeleteRoom(ctx, "r1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("double delete: err = %v, want ErrRoomNotFound", err)
	}
}
