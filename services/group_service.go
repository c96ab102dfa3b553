package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"retreat-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GroupService manages counselling teams and their membership.
type GroupService struct {
	DB *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{DB: db}
}

func (s *GroupService) Create(group *models.Group) error {
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrInvalidArgument)
	}
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if err := s.DB.Create(group).Error; err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (s *GroupService) GetAll() ([]models.Group, error) {
	var groups []models.Group
	if err := s.DB.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetByID loads the group together with its member roster.
func (s *GroupService) GetByID(id string) (*models.Group, error) {
	var group models.Group
	err := s.DB.
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("participants.name ASC")
		}).
		First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &group, nil
}

// groupUpdateColumns maps a PATCH body onto DB columns, the same way
// participantUpdateColumns does: explicit json-name mapping, silent strip
// of identity/timestamps/members, rejection of anything unknown.
func groupUpdateColumns(fields map[string]interface{}) (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "id", "createdAt", "created_at", "updatedAt", "updated_at", "members":
		case "name":
			name, ok := value.(string)
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, fmt.Errorf("%w: group name must be a non-empty string", ErrInvalidArgument)
			}
			columns["name"] = name
		case "counselor":
			counselor, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: counselor must be a string", ErrInvalidArgument)
			}
			columns["counselor"] = counselor
		case "notes":
			if value == nil {
				columns["notes"] = nil
				continue
			}
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("%w: notes must be a JSON value", ErrInvalidArgument)
			}
			columns["notes"] = datatypes.JSON(raw)
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, key)
		}
	}
	return columns, nil
}

func (s *GroupService) Update(id string, fields map[string]interface{}) (*models.Group, error) {
	columns, err := groupUpdateColumns(fields)
	if err != nil {
		return nil, err
	}

	if len(columns) > 0 {
		res := s.DB.Model(&models.Group{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return nil, fmt.Errorf("update group: %w", res.Error)
		}
	}
	return s.GetByID(id)
}

// Delete removes the group and detaches its members.
func (s *GroupService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	err := s.DB.Model(&models.Participant{}).
		Where("group_id = ?", id).
		Update("group_id", nil).Error
	if err != nil {
		return fmt.Errorf("detach group members: %w", err)
	}
	if err := s.DB.Where("id = ?", id).Delete(&models.Group{}).Error; err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// AddMember puts a participant into the group, replacing any previous
// group membership (one team per participant).
func (s *GroupService) AddMember(groupID, participantID string) error {
	if _, err := s.GetByID(groupID); err != nil {
		return err
	}
	res := s.DB.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("group_id", groupID)
	if res.Error != nil {
		return fmt.Errorf("add group member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.Model(&models.Participant{}).Where("id = ?", participantID).Count(&count).Error; err != nil {
			return fmt.Errorf("add group member: %w", err)
		}
		if count == 0 {
			return ErrParticipantNotFound
		}
	}
	return nil
}

func (s *GroupService) RemoveMember(groupID, participantID string) error {
	res := s.DB.Model(&models.Participant{}).
		Where("id = ? AND group_id = ?", participantID, groupID).
		Update("group_id", nil)
	if res.Error != nil {
		return fmt.Errorf("remove group member: %w", res.Error)
	}
	return nil
}
