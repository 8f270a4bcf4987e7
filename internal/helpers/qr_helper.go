package helpers

import (
	"net/url"
	"strconv"

	"github.com/skip2/go-qrcode"
)

func UPIPaymentURI(vpa, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", payeeName)
	params.Set("am", strconv.FormatFloat(amount, 'f', 2, 64))
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

func EncodeQRPNG(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, 256)
}
