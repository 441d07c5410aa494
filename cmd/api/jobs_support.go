package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/intellect-ai/internal/config"
	"github.com/yourusername/intellect-ai/internal/jobs"
	"github.com/yourusername/intellect-ai/internal/lecture"
)

// jobManagerAPI はハンドラーが必要とするジョブ操作です。
type jobManagerAPI interface {
	Enqueue(ctx context.Context, topic string) (string, error)
	GetRecord(ctx context.Context, jobID string) (*jobs.Record, error)
}

func setupJobs(cfg *config.Config, generator lecture.Generator) (*jobs.Manager, error) {
	opt, err := redis.ParseURL(cfg.QueueRedisURL)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(opt)
	ttlMinutes := cfg.JobExpireMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	store := jobs.NewStore(redisClient, time.Duration(ttlMinutes)*time.Minute)
	manager, err := jobs.NewManager(cfg, generator, store, log.Default())
	if err != nil {
		return nil, err
	}
	return manager, nil
}

type asyncGenerateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// generateAsyncHandler は POST /generate-lecture/async のハンドラーを返します。
func generateAsyncHandler(manager jobManagerAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req asyncGenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "topic is required",
			})
			return
		}

		jobID, err := manager.Enqueue(c.Request.Context(), req.Topic)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "failed to enqueue generation job",
			})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"jobId": jobID})
	}
}

// jobStatusHandler は GET /jobs/:id のハンドラーを返します。
func jobStatusHandler(manager jobManagerAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := strings.TrimSpace(c.Param("id"))
		if jobID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "jobId is required",
			})
			return
		}

		record, err := manager.GetRecord(c.Request.Context(), jobID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "failed to load job record",
			})
			return
		}
		if record == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "job not found",
			})
			return
		}

		payload := gin.H{
			"jobId":     record.JobID,
			"topic":     record.Topic,
			"status":    record.Status,
			"updatedAt": record.UpdatedAt,
		}
		if record.Data != nil {
			payload["data"] = record.Data
		}
		if record.Error != nil {
			payload["error"] = record.Error
		}

		c.JSON(http.StatusOK, payload)
	}
}
