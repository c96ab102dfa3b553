package services

import (
	"fmt"

	"retreat-backend/models"

	"gorm.io/gorm"
)

// ReportService builds the read-only rosters and summaries the admin
// screens render: fellowship rosters, fee status, room occupancy.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type FellowshipRoster struct {
	Fellowship   string               `json:"fellowship"`
	Participants []models.Participant `json:"participants"`
}

// FellowshipRosters groups present participants by fellowship affiliation.
// Participants without an affiliation land in the "" roster last.
func (s *ReportService) FellowshipRosters() ([]FellowshipRoster, error) {
	var participants []models.Participant
	err := s.DB.
		Where("presence = ?", models.PresencePresent).
		Order("fellowship ASC, name ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("fellowship rosters: %w", err)
	}
	return buildFellowshipRosters(participants), nil
}

// buildFellowshipRosters groups a fellowship-sorted participant list into
// rosters; participants without an affiliation land in a "" roster last.
func buildFellowshipRosters(participants []models.Participant) []FellowshipRoster {
	rosters := make([]FellowshipRoster, 0)
	var unaffiliated []models.Participant
	for _, p := range participants {
		if p.Fellowship == "" {
			unaffiliated = append(unaffiliated, p)
			continue
		}
		if len(rosters) == 0 || rosters[len(rosters)-1].Fellowship != p.Fellowship {
			rosters = append(rosters, FellowshipRoster{Fellowship: p.Fellowship})
		}
		last := &rosters[len(rosters)-1]
		last.Participants = append(last.Participants, p)
	}
	if len(unaffiliated) > 0 {
		rosters = append(rosters, FellowshipRoster{Participants: unaffiliated})
	}
	return rosters
}

type FeeSummary struct {
	Total        int              `json:"total"`
	Paid         int              `json:"paid"`
	Unpaid       int              `json:"unpaid"`
	ByFellowship []FellowshipFees `json:"byFellowship"`
}

type FellowshipFees struct {
	Fellowship string `json:"fellowship"`
	Paid       int    `json:"paid"`
	Unpaid     int    `json:"unpaid"`
}

type feeRow struct {
	Fellowship string
	FeePaid    bool
	Count      int
}

func (s *ReportService) FeeSummary() (*FeeSummary, error) {
	var rows []feeRow
	err := s.DB.Model(&models.Participant{}).
		Select("fellowship, fee_paid, COUNT(*) AS count").
		Group("fellowship, fee_paid").
		Order("fellowship ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fee summary: %w", err)
	}
	return summarizeFees(rows), nil
}

func summarizeFees(rows []feeRow) *FeeSummary {
	summary := &FeeSummary{ByFellowship: []FellowshipFees{}}
	byName := map[string]int{}
	for _, row := range rows {
		summary.Total += row.Count
		if row.FeePaid {
			summary.Paid += row.Count
		} else {
			summary.Unpaid += row.Count
		}

		idx, ok := byName[row.Fellowship]
		if !ok {
			summary.ByFellowship = append(summary.ByFellowship, FellowshipFees{Fellowship: row.Fellowship})
			idx = len(summary.ByFellowship) - 1
			byName[row.Fellowship] = idx
		}
		if row.FeePaid {
			summary.ByFellowship[idx].Paid += row.Count
		} else {
			summary.ByFellowship[idx].Unpaid += row.Count
		}
	}
	return summary
}

type RoomOccupancy struct {
	RoomID         string `json:"roomId"`
	RoomNumber     string `json:"roomNumber"`
	Capacity       int    `json:"capacity"`
	Booked         int    `json:"booked"`
	Available      int    `json:"available"`
	Oversubscribed bool   `json:"oversubscribed"`
}

// OccupancyReport lists every room with derived counts. A room shrunk
// below its occupancy shows up oversubscribed rather than evicting anyone.
func (s *ReportService) OccupancyReport() ([]RoomOccupancy, error) {
	rooms := NewRoomService(s.DB)
	all, err := rooms.GetAll()
	if err != nil {
		return nil, err
	}
	return buildOccupancyReport(all), nil
}

func buildOccupancyReport(rooms []models.Room) []RoomOccupancy {
	report := make([]RoomOccupancy, 0, len(rooms))
	for _, room := range rooms {
		report = append(report, RoomOccupancy{
			RoomID:         room.ID,
			RoomNumber:     room.RoomNumber,
			Capacity:       room.Capacity,
			Booked:         room.Booked,
			Available:      room.Available(),
			Oversubscribed: room.Booked > room.Capacity,
		})
	}
	return report
}
