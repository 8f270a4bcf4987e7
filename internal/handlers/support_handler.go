package handlers

import (
	"net/http"

	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

type SupportRequest struct {
	Name      string `json:"name"`
	Contact   string `json:"contact" binding:"required"`
	IssueType string `json:"issueType" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func SubmitSupportRequest(c *gin.Context) {
	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	_, err := svc.Support.Submit(c.Request.Context(), services.SupportInput{
		Name:      req.Name,
		Contact:   req.Contact,
		IssueType: req.IssueType,
		Message:   req.Message,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "Your request has been received. We will get back to you soon.",
	})
}

func ListSupportRequests(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	requests, err := svc.Support.List(c.Request.Context(), principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func ResolveSupportRequest(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	request, err := svc.Support.Resolve(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

func DeleteSupportRequest(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	if err := svc.Support.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Support request deleted successfully."})
}
