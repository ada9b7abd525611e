package middleware

import "github.com/gin-gonic/gin"

// NoStore marks the response as uncacheable for browsers and intermediate proxies.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
