package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type EquipmentHandler struct {
	Store  store.EquipmentStore
	Engine *aggregate.Engine
}

type CreateEquipmentRequest struct {
	EquipmentID         string     `json:"equipmentId" binding:"required"`
	Name                string     `json:"name" binding:"required"`
	Type                string     `json:"type" binding:"required"`
	Status              string     `json:"status"`
	Location            string     `json:"location"`
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time `json:"nextMaintenanceDate"`
}

func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	equipmentType := models.EquipmentType(req.Type)
	if !equipmentType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment type"})
		return
	}

	status := models.EquipmentOperational
	if req.Status != "" {
		status = models.EquipmentStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment status"})
			return
		}
	}

	equipment := models.Equipment{
		EquipmentID:         req.EquipmentID,
		Name:                req.Name,
		Type:                equipmentType,
		Status:              status,
		Location:            req.Location,
		LastMaintenanceDate: req.LastMaintenanceDate,
		NextMaintenanceDate: req.NextMaintenanceDate,
	}
	if err := h.Store.Create(c.Request.Context(), &equipment); err != nil {
		storeError(c, err, "Equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

func (h *EquipmentHandler) GetAllEquipment(c *gin.Context) {
	filter := store.EquipmentFilter{
		Type:     models.EquipmentType(c.Query("type")),
		Status:   models.EquipmentStatus(c.Query("status")),
		Location: c.Query("location"),
	}

	equipment, err := h.Store.List(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Equipment")
		return
	}
	c.JSON(http.StatusOK, equipment)
}

func (h *EquipmentHandler) GetEquipmentByID(c *gin.Context) {
	equipment, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Equipment")
		return
	}
	c.JSON(http.StatusOK, equipment)
}

type UpdateEquipmentRequest struct {
	EquipmentID         *string    `json:"equipmentId"`
	Name                *string    `json:"name"`
	Type                *string    `json:"type"`
	Status              *string    `json:"status"`
	Location            *string    `json:"location"`
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time `json:"nextMaintenanceDate"`
	AssignedTo          *string    `json:"assignedTo"`
}

func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.EquipmentUpdate{
		EquipmentID:         req.EquipmentID,
		Name:                req.Name,
		Location:            req.Location,
		LastMaintenanceDate: req.LastMaintenanceDate,
		NextMaintenanceDate: req.NextMaintenanceDate,
		AssignedTo:          req.AssignedTo,
	}
	if req.Type != nil {
		equipmentType := models.EquipmentType(*req.Type)
		if !equipmentType.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment type"})
			return
		}
		upd.Type = &equipmentType
	}
	if req.Status != nil {
		status := models.EquipmentStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment status"})
			return
		}
		upd.Status = &status
	}

	equipment, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Equipment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully"})
}

type UpdateEquipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *EquipmentHandler) UpdateEquipmentStatus(c *gin.Context) {
	var req UpdateEquipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.EquipmentStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment status"})
		return
	}

	equipment, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.EquipmentUpdate{Status: &status})
	if err != nil {
		storeError(c, err, "Equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

type LogMaintenanceRequest struct {
	LastMaintenanceDate *time.Time `json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time `json:"nextMaintenanceDate"`
}

// LogMaintenance records a completed service and schedules the next one.
func (h *EquipmentHandler) LogMaintenance(c *gin.Context) {
	var req LogMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	last := req.LastMaintenanceDate
	if last == nil {
		now := time.Now()
		last = &now
	}

	// Completing a service puts the unit back in rotation.
	status := models.EquipmentOperational
	equipment, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.EquipmentUpdate{
		Status:              &status,
		LastMaintenanceDate: last,
		NextMaintenanceDate: req.NextMaintenanceDate,
	})
	if err != nil {
		storeError(c, err, "Equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

func (h *EquipmentHandler) GetEquipmentStatistics(c *gin.Context) {
	stats, err := h.Engine.EquipmentStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute equipment statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
