package handler

import (
	"net/http"
	"time"

	"paymenu-backend/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// Root handles GET / with a liveness banner.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "PayMenu Backend API is running!"})
}

// HealthCheck handles GET /health. With no checkers configured it is a plain
// liveness probe; otherwise each dependency is pinged and any failure flips
// the status to DEGRADED with 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		body := gin.H{
			"status":    "UP",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		httpCode := http.StatusOK

		if len(checkers) > 0 {
			deps := make(map[string]depStatus)
			for _, checker := range checkers {
				if err := checker.Ping(c.Request.Context()); err != nil {
					deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
					body["status"] = "DEGRADED"
					httpCode = http.StatusServiceUnavailable
				} else {
					deps[checker.Name()] = depStatus{Status: "healthy"}
				}
			}
			body["dependencies"] = deps
		}

		c.JSON(httpCode, body)
	}
}
