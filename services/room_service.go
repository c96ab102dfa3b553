package services

import (
	"errors"
	"fmt"
	"strings"

	"retreat-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomService handles room records. Capacity changes and deletion go
// through the assignment coordinator, which knows about occupants.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// isDuplicateKeyErr spots unique-index violations across drivers.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicated key")
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return fmt.Errorf("%w: room number is required", ErrInvalidArgument)
	}
	if room.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative", ErrInvalidArgument)
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, room.RoomNumber)
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// GetAll returns every room with its derived booked count filled from one
// grouped count over participant room references.
func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	occupancy, err := s.occupancy()
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		rooms[i].Booked = occupancy[rooms[i].ID]
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	var booked int64
	if err := s.DB.Model(&models.Participant{}).Where("room_id = ?", id).Count(&booked).Error; err != nil {
		return nil, fmt.Errorf("count occupants: %w", err)
	}
	room.Booked = int(booked)
	return &room, nil
}

// UpdateNumber renames a room's display label. Capacity is deliberately
// not updatable here; use the coordinator's ResizeRoom.
func (s *RoomService) UpdateNumber(id, roomNumber string) (*models.Room, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrInvalidArgument)
	}
	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Update("room_number", roomNumber)
	if res.Error != nil {
		if isDuplicateKeyErr(res.Error) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, roomNumber)
		}
		return nil, fmt.Errorf("update room: %w", res.Error)
	}
	return s.GetByID(id)
}

func (s *RoomService) Occupants(id string) ([]models.Participant, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	var occupants []models.Participant
	err := s.DB.
		Where("room_id = ?", id).
		Order("room_assigned_at ASC, id ASC").
		Find(&occupants).Error
	if err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}
	return occupants, nil
}

func (s *RoomService) occupancy() (map[string]int, error) {
	var counts []struct {
		RoomID string
		Count  int
	}
	err := s.DB.Model(&models.Participant{}).
		Select("room_id, COUNT(*) AS count").
		Where("room_id IS NOT NULL").
		Group("room_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("room occupancy: %w", err)
	}
	occupancy := make(map[string]int, len(counts))
	for _, c := range counts {
		occupancy[c.RoomID] = c.Count
	}
	return occupancy, nil
}
