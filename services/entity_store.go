package services

import (
	"context"

	"retreat-backend/models"
)

// EntityStore is the persistence contract the assignment coordinator runs
// against. It assumes read-your-writes per record but no cross-record
// transactions; the one concession to concurrency is SetParticipantRoom,
// a compare-and-set on the participant's current room reference.
//
// Occupant listings must be ordered by (room_assigned_at, id) ascending so
// every reader resolves a capacity race the same way.
type EntityStore interface {
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	ListRooms(ctx context.Context) ([]models.Room, error)
	ListRoomOccupants(ctx context.Context, roomID string) ([]models.Participant, error)
	CountRoomOccupants(ctx context.Context, roomID string) (int, error)

	// SetParticipantRoom writes the participant's room reference iff the
	// stored reference still equals expect (nil meaning unassigned).
	// Returns ErrConcurrentModification when the reference moved, and
	// ErrParticipantNotFound when the participant no longer exists.
	SetParticipantRoom(ctx context.Context, participantID string, roomID, expect *string) error

	UpdateRoomCapacity(ctx context.Context, roomID string, capacity int) error
	DeleteRoom(ctx context.Context, roomID string) error
}
