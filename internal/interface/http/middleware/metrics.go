package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Metrics 记录HTTP请求指标
// path使用路由模板,避免ID造成标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.HTTPInFlight()
		start := time.Now()

		c.Next()

		done()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
