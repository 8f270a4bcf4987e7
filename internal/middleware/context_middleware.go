package middleware

import (
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

// Options carries the request-independent settings handlers need.
type Options struct {
	CookieSecure bool
	UploadDir    string
}

func ServicesMiddleware(svc *services.Services, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", svc)
		c.Set("options", opts)
		c.Next()
	}
}

func GetServices(c *gin.Context) *services.Services {
	svc, exists := c.Get("services")
	if !exists {
		return nil
	}
	return svc.(*services.Services)
}

func GetOptions(c *gin.Context) Options {
	opts, exists := c.Get("options")
	if !exists {
		return Options{CookieSecure: true}
	}
	return opts.(Options)
}
