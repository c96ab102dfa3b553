package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"retreat-backend/models"
)

// MemoryStore is a mutex-guarded in-memory EntityStore. It backs the
// coordinator tests and local runs without a database, and mirrors the
// consistency the MySQL store offers: per-record read-your-writes plus
// the conditional room-reference write, nothing more.
type MemoryStore struct {
	mu           sync.Mutex
	participants map[string]*models.Participant
	rooms        map[string]*models.Room

	// assignSeq orders occupants the way room_assigned_at does in MySQL,
	// without depending on clock resolution.
	assignSeq map[string]int64
	nextSeq   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		participants: make(map[string]*models.Participant),
		rooms:        make(map[string]*models.Room),
		assignSeq:    make(map[string]int64),
	}
}

func cloneParticipant(p *models.Participant) *models.Participant {
	cp := *p
	if p.RoomID != nil {
		roomID := *p.RoomID
		cp.RoomID = &roomID
	}
	if p.GroupID != nil {
		groupID := *p.GroupID
		cp.GroupID = &groupID
	}
	if p.RoomAssignedAt != nil {
		at := *p.RoomAssignedAt
		cp.RoomAssignedAt = &at
	}
	if p.Contact != nil {
		cp.Contact = append([]byte(nil), p.Contact...)
	}
	cp.Room = nil
	cp.Group = nil
	return &cp
}

func cloneRoom(r *models.Room) *models.Room {
	cr := *r
	return &cr
}

// AddParticipant inserts or replaces a participant record.
func (s *MemoryStore) AddParticipant(p models.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[p.ID] = cloneParticipant(&p)
	if p.RoomID != nil {
		s.nextSeq++
		s.assignSeq[p.ID] = s.nextSeq
	}
}

// AddRoom inserts or replaces a room record.
func (s *MemoryStore) AddRoom(r models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = cloneRoom(&r)
}

func (s *MemoryStore) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return cloneParticipant(p), nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return cloneRoom(r), nil
}

func (s *MemoryStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, *cloneRoom(r))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (s *MemoryStore) ListRoomOccupants(ctx context.Context, roomID string) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var occupants []models.Participant
	for _, p := range s.participants {
		if p.RoomID != nil && *p.RoomID == roomID {
			occupants = append(occupants, *cloneParticipant(p))
		}
	}
	sort.Slice(occupants, func(i, j int) bool {
		si, sj := s.assignSeq[occupants[i].ID], s.assignSeq[occupants[j].ID]
		if si != sj {
			return si < sj
		}
		return occupants[i].ID < occupants[j].ID
	})
	return occupants, nil
}

func (s *MemoryStore) CountRoomOccupants(ctx context.Context, roomID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.participants {
		if p.RoomID != nil && *p.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) SetParticipantRoom(ctx context.Context, participantID string, roomID, expect *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[participantID]
	if !ok {
		return ErrParticipantNotFound
	}

	current := p.RoomID
	switch {
	case current == nil && expect == nil:
	case current != nil && expect != nil && *current == *expect:
	default:
		return ErrConcurrentModification
	}

	if roomID == nil {
		p.RoomID = nil
		p.RoomAssignedAt = nil
		delete(s.assignSeq, participantID)
		return nil
	}

	id := *roomID
	now := time.Now().UTC()
	p.RoomID = &id
	p.RoomAssignedAt = &now
	s.nextSeq++
	s.assignSeq[participantID] = s.nextSeq
	return nil
}

func (s *MemoryStore) UpdateRoomCapacity(ctx context.Context, roomID string, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	r.Capacity = capacity
	return nil
}

func (s *MemoryStore) DeleteRoom(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}
	delete(s.rooms, roomID)
	return nil
}
