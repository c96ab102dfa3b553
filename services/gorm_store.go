package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retreat-backend/models"

	"gorm.io/gorm"
)

// GormStore is the MySQL-backed EntityStore.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	var p models.Participant
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return &p, nil
}

func (s *GormStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var r models.Room
	if err := s.DB.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &r, nil
}

func (s *GormStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *GormStore) ListRoomOccupants(ctx context.Context, roomID string) ([]models.Participant, error) {
	var occupants []models.Participant
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("room_assigned_at ASC, id ASC").
		Find(&occupants).Error
	if err != nil {
		return nil, fmt.Errorf("list room occupants: %w", err)
	}
	return occupants, nil
}

func (s *GormStore) CountRoomOccupants(ctx context.Context, roomID string) (int, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Participant{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count room occupants: %w", err)
	}
	return int(count), nil
}

// SetParticipantRoom is a conditional UPDATE: the WHERE clause pins the
// previous room reference, so a lost race shows up as zero affected rows.
func (s *GormStore) SetParticipantRoom(ctx context.Context, participantID string, roomID, expect *string) error {
	updates := map[string]interface{}{
		"room_id":          roomID,
		"room_assigned_at": nil,
	}
	if roomID != nil {
		now := time.Now().UTC()
		updates["room_assigned_at"] = &now
	}

	tx := s.DB.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", participantID)
	if expect == nil {
		tx = tx.Where("room_id IS NULL")
	} else {
		tx = tx.Where("room_id = ?", *expect)
	}

	res := tx.Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("set participant room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.WithContext(ctx).
			Model(&models.Participant{}).
			Where("id = ?", participantID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("set participant room: %w", err)
		}
		if count == 0 {
			return ErrParticipantNotFound
		}
		return ErrConcurrentModification
	}
	return nil
}

func (s *GormStore) UpdateRoomCapacity(ctx context.Context, roomID string, capacity int) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("capacity", capacity)
	if res.Error != nil {
		return fmt.Errorf("update room capacity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// DeleteRoom removes the record for real (Unscoped): a soft-deleted room
// would keep holding its room_number unique index and block re-creation.
func (s *GormStore) DeleteRoom(ctx context.Context, roomID string) error {
	res := s.DB.WithContext(ctx).Unscoped().Where("id = ?", roomID).Delete(&models.Room{})
	if res.Error != nil {
		return fmt.Errorf("delete room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
