package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GatewaySignature is the hex HMAC-SHA256 of "<orderID>|<paymentID>" keyed by the
// gateway secret, as sent back by Razorpay Checkout.
func GatewaySignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func ValidGatewaySignature(secret, orderID, paymentID, signature string) bool {
	expected := GatewaySignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
