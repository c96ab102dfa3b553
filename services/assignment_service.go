package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"retreat-backend/models"
)

// Assignment is the view returned after a successful assign: enough for a
// UI to refresh the row it just edited without re-fetching everything.
type Assignment struct {
	ParticipantID string `json:"participantId"`
	RoomID        string `json:"roomId"`
	RoomNumber    string `json:"roomNumber"`
	Available     int    `json:"available"`
}

// AssignmentService coordinates participant/room assignments. It owns every
// write to Participant.RoomID and keeps two invariants: a participant holds
// at most one room, and a room never commits more occupants than capacity.
//
// The store gives us no cross-record transactions, so Assign works in three
// steps: check capacity against a fresh count, write the reference with a
// compare-and-set on the previous one, then re-verify against the occupant
// list. Occupants are ordered by assignment time, so when two writers land
// in the last slot both resolve the same loser, and the loser rolls its own
// write back. Exactly one of two racers keeps the seat.
type AssignmentService struct {
	store EntityStore
}

func NewAssignmentService(store EntityStore) *AssignmentService {
	return &AssignmentService{store: store}
}

// Assign puts a participant into a room, releasing any previously held room
// as part of the same write. Re-assigning the room the participant already
// holds is a no-op success, which also makes retries after a timeout safe.
func (s *AssignmentService) Assign(ctx context.Context, participantID, roomID string) (*Assignment, error) {
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if p.RoomID != nil && *p.RoomID == roomID {
		return s.assignmentView(ctx, participantID, room)
	}

	// Capacity check against the authoritative count, never a cached counter.
	booked, err := s.store.CountRoomOccupants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if booked >= room.Capacity {
		return nil, ErrRoomFull
	}

	// Single write: acquiring the new room and releasing the old one are the
	// same reference update, so the participant never holds two rooms.
	if err := s.store.SetParticipantRoom(ctx, participantID, &roomID, p.RoomID); err != nil {
		return nil, err
	}

	if err := s.verifyAssign(ctx, participantID, roomID); err != nil {
		return nil, err
	}
	return s.assignmentView(ctx, participantID, room)
}

// verifyAssign re-reads the room and its occupant list after the write. If
// the room vanished, or this participant's slot position falls beyond the
// (possibly just-changed) capacity, the write is rolled back.
func (s *AssignmentService) verifyAssign(ctx context.Context, participantID, roomID string) error {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			s.rollbackAssign(ctx, participantID, roomID)
			return ErrConcurrentModification
		}
		return err
	}

	occupants, err := s.store.ListRoomOccupants(ctx, roomID)
	if err != nil {
		return err
	}
	position := -1
	for i := range occupants {
		if occupants[i].ID == participantID {
			position = i
			break
		}
	}
	if position == -1 {
		// Another writer already moved this participant elsewhere.
		return ErrConcurrentModification
	}
	if position >= room.Capacity {
		s.rollbackAssign(ctx, participantID, roomID)
		return ErrConcurrentModification
	}
	return nil
}

// rollbackAssign is the best-effort compensating write: clear the reference
// we just set. Failure here still leaves position ordering intact, so the
// over-capacity state stays detectable and a retry settles it.
func (s *AssignmentService) rollbackAssign(ctx context.Context, participantID, roomID string) {
	if err := s.store.SetParticipantRoom(ctx, participantID, nil, &roomID); err != nil &&
		!errors.Is(err, ErrConcurrentModification) && !errors.Is(err, ErrParticipantNotFound) {
		log.Printf("warning: rollback of assignment %s -> %s failed: %v", participantID, roomID, err)
	}
}

func (s *AssignmentService) assignmentView(ctx context.Context, participantID string, room *models.Room) (*Assignment, error) {
	booked, err := s.store.CountRoomOccupants(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	available := room.Capacity - booked
	if available < 0 {
		available = 0
	}
	return &Assignment{
		ParticipantID: participantID,
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		Available:     available,
	}, nil
}

// Unassign clears the participant's room reference, releasing exactly one
// slot. A participant with no room is a no-op, not an error.
func (s *AssignmentService) Unassign(ctx context.Context, participantID string) error {
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	if p.RoomID == nil {
		return nil
	}
	err = s.store.SetParticipantRoom(ctx, participantID, nil, p.RoomID)
	if errors.Is(err, ErrConcurrentModification) {
		// Someone else may have unassigned them first; that still counts.
		current, getErr := s.store.GetParticipant(ctx, participantID)
		if getErr != nil {
			return getErr
		}
		if current.RoomID == nil {
			return nil
		}
		return err
	}
	return err
}

// DeleteRoom cascade-unassigns every occupant, then removes the room. The
// steps are individually idempotent, so a partially completed delete is
// finished by calling DeleteRoom again.
func (s *AssignmentService) DeleteRoom(ctx context.Context, roomID string) error {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return err
	}

	if err := s.clearOccupants(ctx, roomID); err != nil {
		return err
	}

	// An assign racing the cascade re-fills the room here; hand the retry
	// decision back to the caller instead of deleting under them.
	remaining, err := s.store.CountRoomOccupants(ctx, roomID)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return ErrConcurrentModification
	}

	if err := s.store.DeleteRoom(ctx, roomID); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil
		}
		return err
	}

	// Sweep references that slipped in between the count and the delete, so
	// no participant is left pointing at a room that no longer resolves.
	return s.clearOccupants(ctx, roomID)
}

func (s *AssignmentService) clearOccupants(ctx context.Context, roomID string) error {
	occupants, err := s.store.ListRoomOccupants(ctx, roomID)
	if err != nil {
		return err
	}
	for i := range occupants {
		err := s.store.SetParticipantRoom(ctx, occupants[i].ID, nil, &roomID)
		if err != nil &&
			!errors.Is(err, ErrConcurrentModification) &&
			!errors.Is(err, ErrParticipantNotFound) {
			return fmt.Errorf("cascade unassign %s: %w", occupants[i].ID, err)
		}
	}
	return nil
}

// ResizeRoom updates a room's capacity. Shrinking below current occupancy
// is allowed and evicts nobody; the returned room carries the live booked
// count so callers can show the over-subscription, and SelectableRooms will
// keep the room out of new assignments until occupancy drops.
func (s *AssignmentService) ResizeRoom(ctx context.Context, roomID string, newCapacity int) (*models.Room, error) {
	if newCapacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be non-negative", ErrInvalidArgument)
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Capacity != newCapacity {
		if err := s.store.UpdateRoomCapacity(ctx, roomID, newCapacity); err != nil {
			return nil, err
		}
		room.Capacity = newCapacity
	}
	booked, err := s.store.CountRoomOccupants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	room.Booked = booked
	return room, nil
}

// SelectableRoomsFor lists the rooms a participant may be assigned to. An
// ineligible participant gets an empty list.
func (s *AssignmentService) SelectableRoomsFor(ctx context.Context, participantID string) ([]models.Room, error) {
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if !IsRoomEligible(*p) {
		return []models.Room{}, nil
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	occupancy := make(map[string]int, len(rooms))
	for _, room := range rooms {
		booked, err := s.store.CountRoomOccupants(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		occupancy[room.ID] = booked
	}
	return SelectableRooms(rooms, occupancy, p.RoomID), nil
}
