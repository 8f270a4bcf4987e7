package handlers

import (
	"net/http"

	"github.com/Srijansendry/Srijan/internal/middleware"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	token, profile, err := svc.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	middleware.SetAdminSession(c, token, middleware.GetOptions(c).CookieSecure)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"profile": gin.H{
			"id":    profile.ID,
			"email": profile.Email,
			"role":  profile.Role,
		},
	})
}

func AdminLogout(c *gin.Context) {
	middleware.ClearAdminSession(c, middleware.GetOptions(c).CookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out."})
}

func CurrentAdmin(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    principal.ID,
		"email": principal.Email,
		"role":  principal.Role,
	})
}
