package services

import "errors"

// Sentinel errors surfaced by the assignment coordinator and the stores.
// Controllers map these onto HTTP statuses; everything here is recoverable
// by the caller (retry, pick another room, or show the message).
var (
	ErrParticipantNotFound = errors.New("participant_not_found")
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrGroupNotFound       = errors.New("group_not_found")

	// ErrRoomFull means the room had no free slot at commit time.
	ErrRoomFull = errors.New("room_full")

	// ErrDuplicateRoomNumber means the display label is already taken.
	ErrDuplicateRoomNumber = errors.New("duplicate_room_number")

	// ErrConcurrentModification means a concurrent writer changed the
	// participant or the room between read and write. Retryable.
	ErrConcurrentModification = errors.New("concurrent_modification")

	ErrInvalidArgument = errors.New("invalid_argument")
)
