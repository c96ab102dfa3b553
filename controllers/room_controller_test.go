package controllers

import (
	"net/http"
	"testing"

	"retreat-backend/models"
	"retreat-backend/services"

	"github.com/gin-gonic/gin"
)

// newRoomRouter wires the coordinator-backed room routes over a MemoryStore.
// Room CRUD validation runs before any database access, so a nil connection
// is enough for the create route.
func newRoomRouter(store *services.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rc := NewRoomController(
		services.NewRoomService(nil),
		services.NewAssignmentService(store),
		services.NewCapacityLedger(store),
	)

	r := gin.New()
	r.POST("/api/rooms", rc.CreateRoom)
	r.GET("/api/rooms/selectable", rc.GetSelectableRooms)
	r.GET("/api/rooms/:id/availability", rc.GetRoomAvailability)
	r.PATCH("/api/rooms/:id/capacity", rc.ResizeRoom)
	r.DELETE("/api/rooms/:id", rc.DeleteRoom)
	return r
}

func TestCreateRoomEndpointRejectsBlankNumber(t *testing.T) {
	r := newRoomRouter(services.NewMemoryStore())

	w, resp := doJSON(t, r, http.MethodPost, "/api/rooms", `{"roomNumber":"  ","capacity":2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
	if resp["code"] != "invalid_argument" {
		t.Fatalf("code = %v, want invalid_argument", resp["code"])
	}
}

func TestResizeRoomEndpoint(t *testing.T) {
	roomA := "room-a"
	store := services.NewMemoryStore()
	store.AddRoom(models.Room{ID: roomA, RoomNumber: "A", Capacity: 3})
	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", RoomID: &roomA})
	store.AddParticipant(models.Participant{ID: "p2", Name: "Beth", RoomID: &roomA})
	r := newRoomRouter(store)

	// Shrinking below occupancy succeeds and reports the oversubscription.
	w, resp := doJSON(t, r, http.MethodPatch, "/api/rooms/room-a/capacity", `{"capacity":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data envelope: %v", resp)
	}
	if data["oversubscribed"] != true {
		t.Fatalf("oversubscribed = %v, want true", data["oversubscribed"])
	}
	room, _ := data["room"].(map[string]interface{})
	if room["capacity"] != float64(1) || room["booked"] != float64(2) {
		t.Fatalf("room = %v", room)
	}
}

func TestResizeRoomEndpointRejectsNegative(t *testing.T) {
	store := services.NewMemoryStore()
	store.AddRoom(models.Room{ID: "room-a", RoomNumber: "A", Capacity: 2})
	r := newRoomRouter(store)

	w, resp := doJSON(t, r, http.MethodPatch, "/api/rooms/room-a/capacity", `{"capacity":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp["code"] != "invalid_argument" {
		t.Fatalf("code = %v, want invalid_argument", resp["code"])
	}
}

func TestRoomAvailabilityEndpoint(t *testing.T) {
	roomA := "room-a"
	store := services.NewMemoryStore()
	store.AddRoom(models.Room{ID: roomA, RoomNumber: "A", Capacity: 3})
	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", RoomID: &roomA})
	r := newRoomRouter(store)

	w, resp := doJSON(t, r, http.MethodGet, "/api/rooms/room-a/availability", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data, _ := resp["data"].(map[string]interface{})
	if data["booked"] != float64(1) || data["available"] != float64(2) {
		t.Fatalf("availability = %v", data)
	}
}

func TestDeleteRoomEndpointCascades(t *testing.T) {
	roomA := "room-a"
	store := services.NewMemoryStore()
	store.AddRoom(models.Room{ID: roomA, RoomNumber: "A", Capacity: 2})
	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", RoomID: &roomA})
	r := newRoomRouter(store)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/rooms/room-a", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/rooms/room-a/availability", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("post-delete status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}
	if resp["code"] != "not_found" {
		t.Fatalf("code = %v, want not_found", resp["code"])
	}
}

func TestSelectableRoomsEndpoint(t *testing.T) {
	store := services.NewMemoryStore()
	store.AddRoom(models.Room{ID: "room-a", RoomNumber: "A", Capacity: 1})
	store.AddParticipant(models.Participant{ID: "p1", Name: "Ann", Gender: models.GenderFemale})
	store.AddParticipant(models.Participant{ID: "p2", Name: "Bob", Gender: models.GenderMale})
	r := newRoomRouter(store)

	w, resp := doJSON(t, r, http.MethodGet, "/api/rooms/selectable?participantId=p1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	rooms, _ := resp["data"].([]interface{})
	if len(rooms) != 1 {
		t.Fatalf("got %d selectable rooms, want 1", len(rooms))
	}

	// Ineligible participants see an empty list rather than an error.
	w, resp = doJSON(t, r, http.MethodGet, "/api/rooms/selectable?participantId=p2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if rooms, _ := resp["data"].([]interface{}); len(rooms) != 0 {
		t.Fatalf("got %d rooms for ineligible participant, want 0", len(rooms))
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/rooms/selectable", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp["code"] != "invalid_argument" {
		t.Fatalf("code = %v, want invalid_argument", resp["code"])
	}
}
