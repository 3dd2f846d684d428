package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP address from the request.
//
// Priority order:
// 1. X-Real-IP header, when it holds a public address
// 2. first public address in X-Forwarded-For, else its first entry
// 3. gin's ClientIP()
//
// The headers are client controlled, so the result is for logging only.
func GetRealIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if ip := net.ParseIP(realIP); ip != nil && !isPrivateIP(ip) {
		return realIP
	}

	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		entries := strings.Split(forwarded, ",")
		for _, entry := range entries {
			candidate := strings.TrimSpace(entry)
			if ip := net.ParseIP(candidate); ip != nil && !isPrivateIP(ip) {
				return candidate
			}
		}
		first := strings.TrimSpace(entries[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	return c.ClientIP()
}

// isPrivateIP reports loopback and RFC 1918 addresses
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate()
}
