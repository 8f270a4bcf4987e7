package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/middleware"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

type UPIPaymentRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	BuyerName     string `json:"buyerName" binding:"required"`
	BuyerEmail    string `json:"buyerEmail" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

type GatewayOrderRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	BuyerName  string `json:"buyerName" binding:"required"`
	BuyerEmail string `json:"buyerEmail" binding:"required"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

type CheckPurchasesRequest struct {
	Email string `json:"email" binding:"required"`
}

type PYQDownloadRequest struct {
	Email    string `json:"email" binding:"required"`
	UserName string `json:"userName"`
}

func SubmitUPIPayment(c *gin.Context) {
	var req UPIPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	order, err := svc.Purchases.SubmitManualPayment(c.Request.Context(), services.ManualPaymentInput{
		ProductID:     req.ProductID,
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"orderId": order.ID,
		"message": "Payment submitted. Access will be granted once an administrator verifies the transfer.",
	})
}

func CreateGatewayOrder(c *gin.Context) {
	var req GatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	order, err := svc.Purchases.CreateGatewayOrder(c.Request.Context(), services.GatewayOrderInput{
		ProductID:  req.ProductID,
		BuyerName:  req.BuyerName,
		BuyerEmail: req.BuyerEmail,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":        order.OrderID,
		"gatewayOrderId": order.GatewayOrderID,
		"amount":         order.Amount,
		"currency":       order.Currency,
		"keyId":          order.KeyID,
	})
}

func VerifyGatewayPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	result, err := svc.Purchases.VerifyGatewayCallback(c.Request.Context(), services.VerifyInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if !result.Verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "SignatureMismatch",
			"message": "payment verification failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func CheckPurchases(c *gin.Context) {
	var req CheckPurchasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	ids, err := svc.Purchases.ListCompletedProductIDs(c.Request.Context(), req.Email)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchasedIds": ids})
}

func GatewayConfig(c *gin.Context) {
	svc, ok := getServices(c)
	if !ok {
		return
	}

	keyID, enabled, err := svc.Purchases.GatewayPublicConfig(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"keyId": keyID, "enabled": enabled})
}

func UPIPaymentQR(c *gin.Context) {
	svc, ok := getServices(c)
	if !ok {
		return
	}

	png, err := svc.Purchases.UPIPaymentQR(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func DownloadPYQ(c *gin.Context) {
	var req PYQDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	pyq, err := svc.Downloads.AuthorizePYQDownload(c.Request.Context(), req.Email, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	opts := middleware.GetOptions(c)
	if err := helpers.ServeContent(c, opts.UploadDir, pyq.FilePath, pyq.ExternalURL, pyq.Title); err != nil {
		if errors.Is(err, helpers.ErrContentUnavailable) {
			helpers.RespondWithErrorKind(c, http.StatusNotFound, "NotFound", "File not available.")
			return
		}
		respondWithServiceError(c, err)
		return
	}

	if err := svc.Downloads.RecordPYQDownload(c.Request.Context(), pyq.ID, req.UserName); err != nil {
		log.Printf("record download of %s: %v", pyq.ID, err)
	}
}
