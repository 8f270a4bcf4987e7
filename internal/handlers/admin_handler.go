package handlers

import (
	"net/http"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=COMPLETED FAILED"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ManageUserRequest struct {
	Action  string `json:"action" binding:"required,oneof=reset_password toggle_lock"`
	UserID  string `json:"userId" binding:"required"`
	Details struct {
		NewPassword string `json:"newPassword"`
	} `json:"details"`
}

func ListOrders(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	page, _ := helpers.StringToInt(c.DefaultQuery("page", "1"))
	limit, _ := helpers.StringToInt(c.DefaultQuery("limit", "20"))
	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}

	result, err := svc.Purchases.ListOrders(c.Request.Context(), principal, filter)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      result.Orders,
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"total_pages": result.TotalPages(),
	})
}

func UpdateOrderStatus(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	order, err := svc.Purchases.SetOrderStatus(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func GetSettings(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	settings, err := svc.Settings.All(c.Request.Context(), principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func UpdateSettings(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	if err := svc.Settings.Update(c.Request.Context(), principal, req); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully."})
}

func ListAdmins(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	admins, err := svc.Accounts.ListAdmins(c.Request.Context(), principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func CreateAdmin(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	profile, err := svc.Accounts.AddAdmin(c.Request.Context(), principal, req.Email, req.Password)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": profile})
}

func ManageUser(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req ManageUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	result, err := svc.Accounts.ManageAdmin(c.Request.Context(), principal, services.ManageInput{
		Action:      req.Action,
		UserID:      req.UserID,
		NewPassword: req.Details.NewPassword,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"userId":    result.Profile.ID,
		"newStatus": result.NewStatus,
	})
}

func ActivityLogs(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	limit, _ := helpers.StringToInt(c.DefaultQuery("limit", "100"))
	activity, err := svc.Downloads.RecentActivity(c.Request.Context(), principal, limit)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
