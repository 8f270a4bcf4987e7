package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/middleware"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

const invalidInputMessage = "Invalid input. Please check your fields."

// respondWithServiceError maps a service sentinel onto its HTTP status and kind.
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.RespondWithErrorKind(c, http.StatusBadRequest, "ValidationError", err.Error())
	case errors.Is(err, services.ErrNotFound):
		helpers.RespondWithErrorKind(c, http.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, services.ErrGatewayUnavailable):
		log.Printf("payment gateway: %v", err)
		helpers.RespondWithErrorKind(c, http.StatusServiceUnavailable, "GatewayUnavailable", "Payment system unavailable. Please try again later.")
	case errors.Is(err, services.ErrForbidden):
		helpers.RespondWithErrorKind(c, http.StatusForbidden, "Forbidden", "You do not have permission to perform this action.")
	case errors.Is(err, services.ErrAccountLocked):
		helpers.RespondWithErrorKind(c, http.StatusForbidden, "AccountLocked", "This account is locked.")
	case errors.Is(err, services.ErrUnauthorized):
		helpers.RespondWithErrorKind(c, http.StatusUnauthorized, "Unauthorized", "Invalid credentials.")
	case errors.Is(err, services.ErrAlreadyReviewed):
		helpers.RespondWithErrorKind(c, http.StatusConflict, "AlreadyReviewed", "You have already submitted a review.")
	case errors.Is(err, services.ErrInvalidTransition):
		helpers.RespondWithErrorKind(c, http.StatusConflict, "InvalidTransition", err.Error())
	default:
		log.Printf("request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		helpers.RespondWithErrorKind(c, http.StatusInternalServerError, "PersistenceError", "Something went wrong. Please try again.")
	}
}

func getServices(c *gin.Context) (*services.Services, bool) {
	svc := middleware.GetServices(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not configured.")
		return nil, false
	}
	return svc, true
}

func getPrincipal(c *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithErrorKind(c, http.StatusUnauthorized, "Unauthorized", "Authentication required.")
		return models.Principal{}, false
	}
	return principal, true
}

func respondInvalidInput(c *gin.Context) {
	helpers.RespondWithErrorKind(c, http.StatusBadRequest, "ValidationError", invalidInputMessage)
}
