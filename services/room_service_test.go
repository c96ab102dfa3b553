package services

import (
	"errors"
	"fmt"
	"testing"

	"retreat-backend/models"
)

func TestRoomCreateValidation(t *testing.T) {
	svc := NewRoomService(nil)

	if err := svc.Create(&models.Room{RoomNumber: "  ", Capacity: 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blank number: err = %v, want ErrInvalidArgument", err)
	}
	if err := svc.Create(&models.Room{RoomNumber: "101", Capacity: -1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative capacity: err = %v, want ErrInvalidArgument", err)
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf("Error 1062 (23000): Duplicate entry '101' for key 'rooms.idx_rooms_room_number'"), true},
		{fmt.Errorf("UNIQUE constraint failed: rooms.room_number"), true},
		{fmt.Errorf("ERROR: duplicated key not allowed"), true},
		{fmt.Errorf("connection refused"), false},
	}
	for _, tt := range tests {
		if got := isDuplicateKeyErr(tt.err); got != tt.want {
			t.Errorf("isDuplicateKeyErr(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
