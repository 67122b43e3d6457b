package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store"
)

type ProductionHandler struct {
	Store  store.ProductionStore
	Engine *aggregate.Engine
	Hub    *socket.Hub
}

type CreateProductionRequest struct {
	RecordID      string     `json:"recordId" binding:"required"`
	Date          *time.Time `json:"date"`
	Quantity      *float64   `json:"quantity" binding:"required,gte=0"`
	Mineral       string     `json:"mineral" binding:"required"`
	Location      string     `json:"location" binding:"required"`
	Shift         string     `json:"shift" binding:"required"`
	Supervisor    string     `json:"supervisor"`
	FieldOperator string     `json:"fieldOperator" binding:"required"`
	WorkingHours  float64    `json:"workingHours" binding:"required"`
	Remarks       string     `json:"remarks"`
}

func (h *ProductionHandler) CreateProductionRecord(c *gin.Context) {
	var req CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mineralID, err := primitive.ObjectIDFromHex(req.Mineral)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mineral reference"})
		return
	}
	shiftID, err := primitive.ObjectIDFromHex(req.Shift)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift reference"})
		return
	}
	operatorID, err := primitive.ObjectIDFromHex(req.FieldOperator)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fieldOperator reference"})
		return
	}

	record := models.ProductionRecord{
		RecordID:      req.RecordID,
		Date:          time.Now(),
		Quantity:      *req.Quantity,
		Mineral:       mineralID,
		Location:      req.Location,
		Shift:         shiftID,
		FieldOperator: operatorID,
		WorkingHours:  req.WorkingHours,
		Remarks:       req.Remarks,
		Status:        models.ProductionPending,
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Supervisor != "" {
		supervisorID, err := primitive.ObjectIDFromHex(req.Supervisor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supervisor reference"})
			return
		}
		record.Supervisor = &supervisorID
	}

	if err := h.Store.Create(c.Request.Context(), &record); err != nil {
		storeError(c, err, "Production record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *ProductionHandler) GetAllProductionRecords(c *gin.Context) {
	filter := store.ProductionFilter{
		Mineral: c.Query("mineral"),
		Shift:   c.Query("shift"),
		Status:  models.ProductionStatus(c.Query("status")),
		Date:    queryDateRange(c),
	}

	records, err := h.Store.List(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Production record")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ProductionHandler) GetProductionRecordByID(c *gin.Context) {
	record, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Production record")
		return
	}
	c.JSON(http.StatusOK, record)
}

type UpdateProductionRequest struct {
	RecordID      *string    `json:"recordId"`
	Date          *time.Time `json:"date"`
	Quantity      *float64   `json:"quantity"`
	Mineral       *string    `json:"mineral"`
	Location      *string    `json:"location"`
	Shift         *string    `json:"shift"`
	Supervisor    *string    `json:"supervisor"`
	FieldOperator *string    `json:"fieldOperator"`
	WorkingHours  *float64   `json:"workingHours"`
	Remarks       *string    `json:"remarks"`
	Status        *string    `json:"status"`
}

func (h *ProductionHandler) UpdateProductionRecord(c *gin.Context) {
	var req UpdateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must not be negative"})
		return
	}

	upd := store.ProductionUpdate{
		RecordID:      req.RecordID,
		Date:          req.Date,
		Quantity:      req.Quantity,
		Mineral:       req.Mineral,
		Location:      req.Location,
		Shift:         req.Shift,
		Supervisor:    req.Supervisor,
		FieldOperator: req.FieldOperator,
		WorkingHours:  req.WorkingHours,
		Remarks:       req.Remarks,
	}
	if req.Status != nil {
		status := models.ProductionStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid production status"})
			return
		}
		upd.Status = &status
	}

	record, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "Production record")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ProductionHandler) DeleteProductionRecord(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Production record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Production record deleted successfully"})
}

// ApproveProductionRecord sets the record to Approved. Re-approving an
// already approved record is a no-op.
func (h *ProductionHandler) ApproveProductionRecord(c *gin.Context) {
	status := models.ProductionApproved
	record, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.ProductionUpdate{Status: &status})
	if err != nil {
		storeError(c, err, "Production record")
		return
	}

	h.Hub.BroadcastEvent("production.approved", gin.H{
		"recordId": record.RecordID,
		"quantity": record.Quantity,
	})

	c.JSON(http.StatusOK, record)
}

func (h *ProductionHandler) GetProductionStatistics(c *gin.Context) {
	overall, byMineral, err := h.Engine.ProductionStatistics(c.Request.Context(), queryDateRange(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute production statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"overall": overall, "byMineral": byMineral})
}
