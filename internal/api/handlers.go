package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"compintel/server/config"
	"compintel/server/internal/history"
	"compintel/server/internal/pipeline"
	"compintel/server/internal/queue"
)

type Handler struct {
	pipe   *pipeline.Pipeline
	store  history.Store
	queue  *queue.ReportQueue
	logger *logrus.Logger
}

type ReportRequest struct {
	URL string `json:"url" binding:"required"`
}

type BatchRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

func NewHandler(pipe *pipeline.Pipeline, store history.Store, q *queue.ReportQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		pipe:   pipe,
		store:  store,
		queue:  q,
		logger: logger,
	}
}

// GenerateReport runs the pipeline synchronously for one listing URL.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse report request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	report := h.pipe.Run(req.URL)
	c.JSON(http.StatusOK, report)
}

// EnqueueBatch queues a batch of listing URLs for background processing.
func (h *Handler) EnqueueBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	job := queue.ReportJob{ID: uuid.NewString(), URLs: req.URLs}
	if err := h.queue.Push(job); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue report job")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report queue is full"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "queued",
		"job_id": job.ID,
		"urls":   len(req.URLs),
	})
}

// GetHistory returns the search-history snapshot, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	records, err := h.store.Snapshot()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read search history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read search history"})
		return
	}

	// Snapshot is append-ordered; reverse for the listing.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	c.JSON(http.StatusOK, records)
}

// GetRepeatPlayers returns parties seen across multiple searched properties.
func (h *Handler) GetRepeatPlayers(c *gin.Context) {
	min, err := strconv.Atoi(c.DefaultQuery("min", "2"))
	if err != nil || min <= 0 {
		min = 2
	}

	players, err := history.RepeatPlayers(h.store, min)
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate repeat players")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate repeat players"})
		return
	}
	c.JSON(http.StatusOK, players)
}

// GetRules returns the active keyword table and cost schedule.
func (h *Handler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"keywords":      config.GetKeywordTable(),
		"cost_schedule": config.GetCostSchedule(),
	})
}
