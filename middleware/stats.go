package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-insight/backend/stats"
)

// Stats records duration and outcome for every analysis request.
func Stats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Request.URL.Path == "/api/analyze" && c.Request.Method == http.MethodPost {
			durationMs := float64(time.Since(start).Milliseconds())
			storage.RecordAnalysis(durationMs, c.Writer.Status() >= 400)
		}
	}
}
