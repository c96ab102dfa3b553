package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"retreat-backend/controllers"
	"retreat-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the API route groups.
func SetupRouter(
	pc *controllers.ParticipantController,
	rc *controllers.RoomController,
	ac *controllers.AssignmentController,
	gc *controllers.GroupController,
	rpc *controllers.ReportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		participants := api.Group("/participants")
		{
			participants.GET("", pc.GetParticipants)
			participants.GET("/:id", pc.GetParticipantByID)
			participants.GET("/:id/eligibility", pc.GetEligibility)
			participants.POST("", pc.RegisterParticipant)
			participants.PATCH("/:id", pc.UpdateParticipant)
			participants.PATCH("/:id/presence", pc.SetPresence)
			participants.PATCH("/:id/fee", pc.SetFeePaid)
			participants.DELETE("/:id", pc.DeleteParticipant)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			// must stay ahead of /:id
			rooms.GET("/selectable", rc.GetSelectableRooms)

			rooms.GET("/:id", rc.GetRoomByID)
			rooms.GET("/:id/occupants", rc.GetRoomOccupants)
			rooms.GET("/:id/availability", rc.GetRoomAvailability)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id/capacity", rc.ResizeRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("", ac.AssignRoom)
			assignments.DELETE("/:participantId", ac.UnassignRoom)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", gc.GetGroups)
			groups.GET("/:id", gc.GetGroupByID)
			groups.POST("", gc.CreateGroup)
			groups.PATCH("/:id", gc.UpdateGroup)
			groups.DELETE("/:id", gc.DeleteGroup)
			groups.POST("/:id/members", gc.AddMember)
			groups.DELETE("/:id/members/:participantId", gc.RemoveMember)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/fellowships", rpc.GetFellowshipRosters)
			reports.GET("/fees", rpc.GetFeeSummary)
			reports.GET("/occupancy", rpc.GetOccupancyReport)
		}
	}

	return r
}
