// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const ServiceName = "ligandscope-api"

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

var startTime = time.Now()

// PairCounter reports how many cell pairs the loaded dataset holds.
type PairCounter interface {
	Len() int
}

// HealthHandler reports liveness together with the size of the dataset.
func HealthHandler(pairs PairCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		details := map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		}
		if pairs != nil {
			details["dataset_pairs"] = strconv.Itoa(pairs.Len())
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   ServiceName,
			Uptime:    time.Since(startTime).String(),
			Details:   details,
		})
	}
}
