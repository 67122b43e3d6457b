package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type MineralHandler struct {
	Store store.MineralStore
}

type CreateMineralRequest struct {
	MineralID   string `json:"mineralId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Grade       string `json:"grade" binding:"required"`
	Description string `json:"description"`
}

func (h *MineralHandler) CreateMineral(c *gin.Context) {
	var req CreateMineralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mineral := models.Mineral{
		MineralID:   req.MineralID,
		Name:        req.Name,
		Grade:       req.Grade,
		Description: req.Description,
	}
	if err := h.Store.Create(c.Request.Context(), &mineral); err != nil {
		storeError(c, err, "Mineral")
		return
	}

	c.JSON(http.StatusCreated, mineral)
}

func (h *MineralHandler) GetAllMinerals(c *gin.Context) {
	minerals, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeError(c, err, "Mineral")
		return
	}
	c.JSON(http.StatusOK, minerals)
}

func (h *MineralHandler) GetMineralByID(c *gin.Context) {
	mineral, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Mineral")
		return
	}
	c.JSON(http.StatusOK, mineral)
}

type UpdateMineralRequest struct {
	MineralID   *string `json:"mineralId"`
	Name        *string `json:"name"`
	Grade       *string `json:"grade"`
	Description *string `json:"description"`
}

func (h *MineralHandler) UpdateMineral(c *gin.Context) {
	var req UpdateMineralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mineral, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.MineralUpdate{
		MineralID:   req.MineralID,
		Name:        req.Name,
		Grade:       req.Grade,
		Description: req.Description,
	})
	if err != nil {
		storeError(c, err, "Mineral")
		return
	}

	c.JSON(http.StatusOK, mineral)
}

func (h *MineralHandler) DeleteMineral(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Mineral")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mineral deleted successfully"})
}
