package controllers

import (
	"net/http"

	"retreat-backend/services"
	"retreat-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GET /api/reports/fellowships
func (rc *ReportController) GetFellowshipRosters(c *gin.Context) {
	rosters, err := rc.reports.FellowshipRosters()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rosters)
}

// GET /api/reports/fees
func (rc *ReportController) GetFeeSummary(c *gin.Context) {
	summary, err := rc.reports.FeeSummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// GET /api/reports/occupancy
func (rc *ReportController) GetOccupancyReport(c *gin.Context) {
	report, err := rc.reports.OccupancyReport()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
