package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/api/middleware"
	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type UserHandler struct {
	Store store.UserStore
}

type RegisterRequest struct {
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new user account. The password is stored as a bcrypt
// hash, never verbatim.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		UserID:   req.UserID,
		UserName: req.UserName,
		Role:     role,
		Email:    req.Email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := h.Store.Create(c.Request.Context(), &user); err != nil {
		storeError(c, err, "User")
		return
	}

	c.JSON(http.StatusCreated, user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		// One message for both failure modes, no account probing.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetProfile returns the authenticated caller's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.Store.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	UserName *string `json:"userName"`
	Email    *string `json:"email"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.Update(c.Request.Context(), principal.ID, store.UserUpdate{
		UserName: req.UserName,
		Email:    req.Email,
	})
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		storeError(c, err, "User")
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if _, err := h.Store.Update(c.Request.Context(), principal.ID, store.UserUpdate{Password: &hashedPassword}); err != nil {
		storeError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// --- Admin user management ---

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	UserName *string `json:"userName"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.UserUpdate{
		UserName: req.UserName,
		Email:    req.Email,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		upd.Role = &role
	}

	user, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *UserHandler) SetUserActive(c *gin.Context) {
	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.UserUpdate{IsActive: req.IsActive})
	if err != nil {
		storeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}
