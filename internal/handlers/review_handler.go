package handlers

import (
	"net/http"

	"github.com/Srijansendry/Srijan/internal/middleware"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	reviewSessionCookie = "review_session_id"
	reviewSessionMaxAge = 365 * 24 * 60 * 60
)

type ReviewRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required"`
	UserName string `json:"userName"`
}

type ReviewStatusRequest struct {
	Status models.ReviewStatus `json:"status" binding:"required,oneof=approved rejected"`
}

type ReviewFeaturedRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

// reviewIdentity picks the key a review is de-duplicated on: the signed-in
// principal, else the review session cookie, minted here on first use.
func reviewIdentity(c *gin.Context) string {
	if principal, ok := middleware.GetPrincipal(c); ok {
		return principal.ID.String()
	}
	if value, err := c.Cookie(reviewSessionCookie); err == nil {
		if _, err := uuid.Parse(value); err == nil {
			return value
		}
	}

	identity := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(reviewSessionCookie, identity, reviewSessionMaxAge, "/", "", middleware.GetOptions(c).CookieSecure, true)
	return identity
}

func SubmitReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	_, err := svc.Reviews.SubmitReview(c.Request.Context(), services.ReviewInput{
		Rating:      req.Rating,
		Comment:     req.Comment,
		UserName:    req.UserName,
		IdentityKey: reviewIdentity(c),
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "Thanks! Your review will appear once it is approved.",
	})
}

func ListReviews(c *gin.Context) {
	svc, ok := getServices(c)
	if !ok {
		return
	}

	reviews, err := svc.Reviews.ListApproved(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func AdminListReviews(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	reviews, err := svc.Reviews.ListAll(c.Request.Context(), principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func UpdateReviewStatus(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req ReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	review, err := svc.Reviews.SetStatus(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

func UpdateReviewFeatured(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req ReviewFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	review, err := svc.Reviews.SetFeatured(c.Request.Context(), principal, c.Param("id"), *req.IsFeatured)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

func DeleteReview(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	svc, ok := getServices(c)
	if !ok {
		return
	}

	if err := svc.Reviews.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully."})
}
