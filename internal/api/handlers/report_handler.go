package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/api/middleware"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store"
)

type ReportHandler struct {
	Store  store.ReportStore
	Engine *aggregate.Engine
	Hub    *socket.Hub
}

type CreateReportRequest struct {
	ReportID string      `json:"reportId" binding:"required"`
	Title    string      `json:"title" binding:"required"`
	Type     string      `json:"type" binding:"required"`
	DateFrom time.Time   `json:"dateFrom" binding:"required"`
	DateTo   time.Time   `json:"dateTo" binding:"required"`
	Data     interface{} `json:"data"`
}

// CreateReport stores a manually authored report. Generated reports come from
// the aggregation endpoints instead.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportType := models.ReportType(req.Type)
	if !reportType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
		return
	}

	generatedBy, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid caller identity"})
		return
	}

	report := models.Report{
		ReportID:    req.ReportID,
		Title:       req.Title,
		Type:        reportType,
		GeneratedBy: generatedBy,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Data:        req.Data,
		Status:      models.ReportDraft,
	}
	if err := h.Store.Create(c.Request.Context(), &report); err != nil {
		storeError(c, err, "Report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetAllReports(c *gin.Context) {
	filter := store.ReportFilter{
		Type:    models.ReportType(c.Query("type")),
		Status:  models.ReportStatus(c.Query("status")),
		Created: queryDateRange(c),
	}

	reports, err := h.Store.List(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetReportByID(c *gin.Context) {
	report, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, report)
}

type UpdateReportRequest struct {
	ReportID *string     `json:"reportId"`
	Title    *string     `json:"title"`
	Type     *string     `json:"type"`
	DateFrom *time.Time  `json:"dateFrom"`
	DateTo   *time.Time  `json:"dateTo"`
	Data     interface{} `json:"data"`
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.ReportUpdate{
		ReportID: req.ReportID,
		Title:    req.Title,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Data:     req.Data,
	}
	if req.Type != nil {
		reportType := models.ReportType(*req.Type)
		if !reportType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
			return
		}
		upd.Type = &reportType
	}

	report, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

type GenerateProductionSummaryRequest struct {
	DateFrom time.Time `json:"dateFrom" binding:"required"`
	DateTo   time.Time `json:"dateTo" binding:"required"`
}

// GenerateProductionSummary aggregates the requested window and persists the
// result as a Generated report attributed to the caller.
func (h *ReportHandler) GenerateProductionSummary(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req GenerateProductionSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DateTo.Before(req.DateFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo must not be before dateFrom"})
		return
	}

	generatedBy, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid caller identity"})
		return
	}

	report, err := h.Engine.GenerateProductionSummary(c.Request.Context(), req.DateFrom, req.DateTo, generatedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate production summary"})
		return
	}

	h.Hub.BroadcastEvent("report.generated", gin.H{
		"reportId": report.ReportID,
		"type":     report.Type,
		"title":    report.Title,
	})

	c.JSON(http.StatusCreated, report)
}

// GenerateEquipmentReport snapshots the current equipment state as a
// Generated report attributed to the caller.
func (h *ReportHandler) GenerateEquipmentReport(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	generatedBy, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid caller identity"})
		return
	}

	report, err := h.Engine.GenerateEquipmentReport(c.Request.Context(), generatedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate equipment report"})
		return
	}

	h.Hub.BroadcastEvent("report.generated", gin.H{
		"reportId": report.ReportID,
		"type":     report.Type,
		"title":    report.Title,
	})

	c.JSON(http.StatusCreated, report)
}

// ApproveReport marks a report Approved. Re-approving is a no-op.
func (h *ReportHandler) ApproveReport(c *gin.Context) {
	status := models.ReportApproved
	report, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.ReportUpdate{Status: &status})
	if err != nil {
		storeError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, report)
}
