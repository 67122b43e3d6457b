package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/api/middleware"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/s3"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store"
)

type IncidentHandler struct {
	Store    store.IncidentStore
	Engine   *aggregate.Engine
	Hub      *socket.Hub
	Uploader *s3.Uploader
}

type CreateIncidentRequest struct {
	IncidentID  string     `json:"incidentId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Severity    string     `json:"severity"`
	Location    string     `json:"location" binding:"required"`
	Date        *time.Time `json:"date"`
	Equipment   string     `json:"equipment"`
}

// CreateIncident records a new incident. The reporter is the authenticated
// caller, not a value from the request body.
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidentType := models.IncidentType(req.Type)
	if !incidentType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident type"})
		return
	}

	severity := models.SeverityMedium
	if req.Severity != "" {
		severity = models.IncidentSeverity(req.Severity)
		if !severity.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident severity"})
			return
		}
	}

	reporterID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid caller identity"})
		return
	}

	incident := models.Incident{
		IncidentID:  req.IncidentID,
		Title:       req.Title,
		Description: req.Description,
		Type:        incidentType,
		Severity:    severity,
		Location:    req.Location,
		Date:        time.Now(),
		ReportedBy:  reporterID,
		Status:      models.IncidentOpen,
	}
	if req.Date != nil {
		incident.Date = *req.Date
	}
	if req.Equipment != "" {
		equipmentID, err := primitive.ObjectIDFromHex(req.Equipment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment reference"})
			return
		}
		incident.Equipment = &equipmentID
	}

	if err := h.Store.Create(c.Request.Context(), &incident); err != nil {
		storeError(c, err, "Incident")
		return
	}

	h.Hub.BroadcastEvent("incident.reported", gin.H{
		"incidentId": incident.IncidentID,
		"title":      incident.Title,
		"severity":   incident.Severity,
		"location":   incident.Location,
	})

	c.JSON(http.StatusCreated, incident)
}

func (h *IncidentHandler) GetAllIncidents(c *gin.Context) {
	filter := store.IncidentFilter{
		Type:     models.IncidentType(c.Query("type")),
		Severity: models.IncidentSeverity(c.Query("severity")),
		Status:   models.IncidentStatus(c.Query("status")),
		Date:     queryDateRange(c),
	}

	incidents, err := h.Store.List(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Incident")
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) GetIncidentByID(c *gin.Context) {
	incident, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Incident")
		return
	}
	c.JSON(http.StatusOK, incident)
}

type UpdateIncidentRequest struct {
	IncidentID  *string    `json:"incidentId"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	Severity    *string    `json:"severity"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	Equipment   *string    `json:"equipment"`
	ActionTaken *string    `json:"actionTaken"`
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	var req UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.IncidentUpdate{
		IncidentID:  req.IncidentID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Equipment:   req.Equipment,
		ActionTaken: req.ActionTaken,
	}
	if req.Type != nil {
		incidentType := models.IncidentType(*req.Type)
		if !incidentType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident type"})
			return
		}
		upd.Type = &incidentType
	}
	if req.Severity != nil {
		severity := models.IncidentSeverity(*req.Severity)
		if !severity.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident severity"})
			return
		}
		upd.Severity = &severity
	}

	incident, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Incident")
		return
	}

	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Incident")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Incident deleted successfully"})
}

type UpdateIncidentStatusRequest struct {
	Status      string  `json:"status" binding:"required"`
	ActionTaken *string `json:"actionTaken"`
	ResolvedBy  string  `json:"resolvedBy"`
}

// UpdateIncidentStatus sets the incident status. Closing transitions
// (Resolved, Closed) require a resolver and stamp the resolution time; other
// transitions leave any earlier resolution fields untouched.
func (h *IncidentHandler) UpdateIncidentStatus(c *gin.Context) {
	var req UpdateIncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.IncidentStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident status"})
		return
	}

	upd := store.IncidentUpdate{
		Status:      &status,
		ActionTaken: req.ActionTaken,
	}
	if status == models.IncidentResolved || status == models.IncidentClosed {
		if req.ResolvedBy == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resolvedBy is required to resolve or close an incident"})
			return
		}
		now := time.Now()
		upd.ResolvedBy = &req.ResolvedBy
		upd.ResolvedDate = &now
	}

	incident, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Incident")
		return
	}

	c.JSON(http.StatusOK, incident)
}

// UploadIncidentPhoto attaches an evidence photo to an incident.
func (h *IncidentHandler) UploadIncidentPhoto(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	photoID := uuid.New().String()
	objectKey := fmt.Sprintf("incidents/%s/%s-%s", c.Param("id"), photoID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		return
	}

	incident, err := h.Store.AddPhoto(c.Request.Context(), c.Param("id"), models.Photo{
		ID:       photoID,
		URL:      url,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		storeError(c, err, "Incident")
		return
	}

	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) GetIncidentStatistics(c *gin.Context) {
	stats, err := h.Engine.IncidentStatistics(c.Request.Context(), queryDateRange(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute incident statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
