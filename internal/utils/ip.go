package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealClientIP 获取客户端真实 IP
func GetRealClientIP(c *gin.Context) string {
	// 优先从 Header 中取（反向代理场景）
	ipHeaders := []string{
		"CF-Connecting-IP",
		"X-Real-IP",
		"X-Forwarded-For",
	}

	for _, header := range ipHeaders {
		ipList := c.Request.Header.Get(header)
		if ipList == "" {
			continue
		}
		// X-Forwarded-For 可能包含多个IP，取第一个合法IP
		for _, ip := range strings.Split(ipList, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" && net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	// 从 RemoteAddr 兜底
	ip, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err == nil && net.ParseIP(ip) != nil {
		return ip
	}
	return c.ClientIP()
}
