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

// ParticipantService handles registration and participant record upkeep.
// The room reference is out of bounds here: only the assignment
// coordinator writes Participant.RoomID.
type ParticipantService struct {
	DB *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{DB: db}
}

// ParticipantFilter narrows GetAll. Zero values mean "no filter".
type ParticipantFilter struct {
	Gender     string
	Department string
	Fellowship string
	Presence   string
	FeePaid    *bool
	Search     string
}

func (s *ParticipantService) Register(p *models.Participant) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if p.Gender != models.GenderMale && p.Gender != models.GenderFemale {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidArgument)
	}
	if p.Presence == "" {
		p.Presence = models.PresencePresent
	}
	if p.Presence != models.PresencePresent && p.Presence != models.PresenceAbsent {
		return fmt.Errorf("%w: presence must be present or absent", ErrInvalidArgument)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	// Registration never carries a room; assignment is a separate step.
	p.RoomID = nil
	p.RoomAssignedAt = nil

	if err := s.DB.Create(p).Error; err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (s *ParticipantService) GetAll(filter ParticipantFilter) ([]models.Participant, error) {
	query := s.DB.Model(&models.Participant{}).Preload("Room")

	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Fellowship != "" {
		query = query.Where("fellowship = ?", filter.Fellowship)
	}
	if filter.Presence != "" {
		query = query.Where("presence = ?", filter.Presence)
	}
	if filter.FeePaid != nil {
		query = query.Where("fee_paid = ?", *filter.FeePaid)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var participants []models.Participant
	if err := query.Order("name ASC").Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

func (s *ParticipantService) GetByID(id string) (*models.Participant, error) {
	var p models.Participant
	if err := s.DB.Preload("Room").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return &p, nil
}

// participantUpdateColumns translates a raw PATCH body into DB column
// assignments. JSON field names are mapped explicitly (GORM's Updates
// would pass unknown map keys through as literal column names), enum
// fields are validated, and the contact document is serialized. Identity,
// timestamp, room, and group keys are stripped silently so clients may
// echo a full record back; anything else is rejected.
func participantUpdateColumns(fields map[string]interface{}) (map[string]interface{}, error) {
	columns := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "id", "createdAt", "created_at", "updatedAt", "updated_at", "deletedAt", "deleted_at",
			"roomId", "room_id", "roomAssignedAt", "room_assigned_at", "room",
			"groupId", "group_id", "group":
			// room fields belong to the coordinator, group membership to
			// the group endpoints
		case "name":
			name, ok := value.(string)
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, fmt.Errorf("%w: name must be a non-empty string", ErrInvalidArgument)
			}
			columns["name"] = name
		case "gender":
			gender, ok := value.(string)
			if !ok || (gender != models.GenderMale && gender != models.GenderFemale) {
				return nil, fmt.Errorf("%w: gender must be male or female", ErrInvalidArgument)
			}
			columns["gender"] = gender
		case "presence":
			presence, ok := value.(string)
			if !ok || (presence != models.PresencePresent && presence != models.PresenceAbsent) {
				return nil, fmt.Errorf("%w: presence must be present or absent", ErrInvalidArgument)
			}
			columns["presence"] = presence
		case "department":
			department, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: department must be a string", ErrInvalidArgument)
			}
			columns["department"] = department
		case "fellowship":
			fellowship, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: fellowship must be a string", ErrInvalidArgument)
			}
			columns["fellowship"] = fellowship
		case "feePaid", "fee_paid":
			paid, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: feePaid must be a boolean", ErrInvalidArgument)
			}
			columns["fee_paid"] = paid
		case "contact":
			if value == nil {
				columns["contact"] = nil
				continue
			}
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("%w: contact must be a JSON value", ErrInvalidArgument)
			}
			columns["contact"] = datatypes.JSON(raw)
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, key)
		}
	}
	return columns, nil
}

// Update applies a partial update. Room and group references are owned by
// their own endpoints and are stripped before the write.
func (s *ParticipantService) Update(id string, fields map[string]interface{}) (*models.Participant, error) {
	columns, err := participantUpdateColumns(fields)
	if err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return s.GetByID(id)
	}

	res := s.DB.Model(&models.Participant{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return nil, fmt.Errorf("update participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetByID(id); err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

/// SetPresence is the soft-removal flow: absent participants disappear from
// most screens but keep their records, fellowship, and held room slot.
func (s *ParticipantService) SetPresence(id, presence string) error {
	if presence != models.PresencePresent && presence != models.PresenceAbsent {
		return fmt.Errorf("%w: presence must be present or absent", ErrInvalidArgument)
	}
	return s.patchField(id, "presence", presence)
}

func (s *ParticipantService) SetFeePaid(id string, paid bool) error {
	return s.patchField(id, "fee_paid", paid)
}

func (s *ParticipantService) patchField(id, column string, value interface{}) error {
	res := s.DB.Model(&models.Participant{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update participant %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.Model(&models.Participant{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("update participant %s: %w", column, err)
		}
		if count == 0 {
			return ErrParticipantNotFound
		}
	}
	return nil
}

// Delete is the explicit admin hard-remove (Unscoped skips the soft-delete
// marker); everyday flows use SetPresence instead.
func (s *ParticipantService) Delete(id string) error {
	res := s.DB.Unscoped().Where("id = ?", id).Delete(&models.Participant{})
	if res.Error != nil {
		return fmt.Errorf("delete participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}
