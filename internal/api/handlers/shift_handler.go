package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type ShiftHandler struct {
	Store store.ShiftStore
}

type CreateShiftRequest struct {
	ShiftID   string `json:"shiftId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := models.ShiftName(req.Name)
	if !name.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift name"})
		return
	}

	shift := models.Shift{
		ShiftID:   req.ShiftID,
		Name:      name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		shift.IsActive = *req.IsActive
	}

	if err := h.Store.Create(c.Request.Context(), &shift); err != nil {
		storeError(c, err, "Shift")
		return
	}

	c.JSON(http.StatusCreated, shift)
}

// GetAllShifts returns the active roster; pass ?all=true to include retired
// shifts.
func (h *ShiftHandler) GetAllShifts(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	shifts, err := h.Store.List(c.Request.Context(), activeOnly)
	if err != nil {
		storeError(c, err, "Shift")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	shift, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Shift")
		return
	}
	c.JSON(http.StatusOK, shift)
}

type UpdateShiftRequest struct {
	ShiftID   *string `json:"shiftId"`
	Name      *string `json:"name"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	IsActive  *bool   `json:"isActive"`
}

func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.ShiftUpdate{
		ShiftID:   req.ShiftID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	}
	if req.Name != nil {
		name := models.ShiftName(*req.Name)
		if !name.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift name"})
			return
		}
		upd.Name = &name
	}

	shift, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Shift")
		return
	}

	c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Shift")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully"})
}
