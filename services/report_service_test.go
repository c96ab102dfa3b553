package services

import (
	"testing"

	"retreat-backend/models"
)

func TestBuildFellowshipRosters(t *testing.T) {
	participants := []models.Participant{
		{ID: "p1", Name: "Ann", Fellowship: "east"},
		{ID: "p2", Name: "Beth", Fellowship: "east"},
		{ID: "p3", Name: "Cara", Fellowship: "north"},
		{ID: "p4", Name: "Dana"},
	}

	rosters := buildFellowshipRosters(participants)
	if len(rosters) != 3 {
		t.Fatalf("got %d rosters, want 3", len(rosters))
	}
	if rosters[0].Fellowship != "east" || len(rosters[0].Participants) != 2 {
		t.Errorf("rosters[0] = %s with %d members", rosters[0].Fellowship, len(rosters[0].Participants))
	}
	if rosters[1].Fellowship != "north" || len(rosters[1].Participants) != 1 {
		t.Errorf("rosters[1] = %s with %d members", rosters[1].Fellowship, len(rosters[1].Participants))
	}
	// Unaffiliated participants come last, under the empty fellowship.
	if rosters[2].Fellowship != "" || len(rosters[2].Participants) != 1 || rosters[2].Participants[0].ID != "p4" {
		t.Errorf("rosters[2] = %+v", rosters[2])
	}
}

func TestBuildFellowshipRostersEmpty(t *testing.T) {
	if got := buildFellowshipRosters(nil); len(got) != 0 {
		t.Fatalf("got %d rosters for no participants", len(got))
	}
}

func TestSummarizeFees(t *testing.T) {
	summary := summarizeFees([]feeRow{
		{Fellowship: "east", FeePaid: false, Count: 3},
		{Fellowship: "east", FeePaid: true, Count: 5},
		{Fellowship: "north", FeePaid: true, Count: 2},
	})

	if summary.Total != 10 || summary.Paid != 7 || summary.Unpaid != 3 {
		t.Fatalf("totals = %d/%d/%d, want 10/7/3", summary.Total, summary.Paid, summary.Unpaid)
	}
	if len(summary.ByFellowship) != 2 {
		t.Fatalf("got %d fellowships, want 2", len(summary.ByFellowship))
	}
	east := summary.ByFellowship[0]
	if east.Fellowship != "east" || east.Paid != 5 || east.Unpaid != 3 {
		t.Errorf("east = %+v", east)
	}
	north := summary.ByFellowship[1]
	if north.Fellowship != "north" || north.Paid != 2 || north.Unpaid != 0 {
		t.Errorf("north = %+v", north)
	}
}

func TestBuildOccupancyReport(t *testing.T) {
	report := buildOccupancyReport([]models.Room{
		{ID: "r1", RoomNumber: "101", Capacity: 4, Booked: 1},
		{ID: "r2", RoomNumber: "102", Capacity: 1, Booked: 2},
	})

	if len(report) != 2 {
		t.Fatalf("got %d rows, want 2", len(report))
	}
	if report[0].Available != 3 || report[0].Oversubscribed {
		t.Errorf("row 101 = %+v", report[0])
	}
	// A room shrunk below occupancy reports zero availability, not negative.
	if report[1].Available != 0 || !report[1].Oversubscribed {
		t.Errorf("row 102 = %+v", report[1])
	}
}
