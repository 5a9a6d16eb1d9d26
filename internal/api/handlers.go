package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leasedash/server/internal/aggregate"
	"leasedash/server/internal/dataset"
	"leasedash/server/internal/distribution"
	"leasedash/server/internal/filter"
	"leasedash/server/internal/metrics"
	"leasedash/server/internal/models"
)

// RefreshTrigger starts an immediate dataset refresh.
type RefreshTrigger interface {
	TriggerRefresh()
}

type Handler struct {
	data      *dataset.Service
	refresher RefreshTrigger
	logger    *logrus.Logger
}

func NewHandler(data *dataset.Service, refresher RefreshTrigger, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		data:      data,
		refresher: refresher,
		logger:    logger,
	}
}

// GetRecords returns the current normalized snapshot, optionally narrowed by
// the fixed dashboard filters.
func (h *Handler) GetRecords(c *gin.Context) {
	var scoped models.ScopedFilters
	if err := c.ShouldBindQuery(&scoped); err != nil {
		h.logger.WithError(err).Error("Failed to parse record filters")
	}

	records := filter.ApplyScoped(h.data.Records(), scoped)
	c.JSON(http.StatusOK, gin.H{
		"records":    records,
		"count":      len(records),
		"updated_at": h.data.UpdatedAt(),
	})
}

// GetSummary returns the headline portfolio metrics.
func (h *Handler) GetSummary(c *gin.Context) {
	records := h.data.Records()
	summary := metrics.Summarize(records)
	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"updated_at": h.data.UpdatedAt(),
	})
}

// ComputeMetric evaluates one scalar aggregation over a filtered record set.
func (h *Handler) ComputeMetric(c *gin.Context) {
	var spec models.MetricSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		h.logger.WithError(err).Error("Failed to parse metric spec")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metric specification"})
		return
	}

	result := aggregate.Metric(h.data.Records(), spec)
	c.JSON(http.StatusOK, result)
}

// ComputeAverage evaluates a scoped average for one metric card.
func (h *Handler) ComputeAverage(c *gin.Context) {
	var scoped models.ScopedFilters
	if err := c.ShouldBindJSON(&scoped); err != nil {
		h.logger.WithError(err).Error("Failed to parse average filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	result := aggregate.Average(h.data.Records(), scoped)
	c.JSON(http.StatusOK, result)
}

// GetGroupedChart builds one grouped or binned chart series.
func (h *Handler) GetGroupedChart(c *gin.Context) {
	var spec models.DistributionSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		h.logger.WithError(err).Error("Failed to parse chart spec")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chart specification"})
		return
	}
	if spec.XMetric == "" || spec.YMetric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x_metric and y_metric are required"})
		return
	}

	chart := distribution.Grouped(h.data.Records(), spec)
	c.JSON(http.StatusOK, chart)
}

// GetCategoryChart counts records per distinct value of a categorical field.
func (h *Handler) GetCategoryChart(c *gin.Context) {
	field := c.Query("field")
	if field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field is required"})
		return
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(distribution.DefaultCategoryLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = distribution.DefaultCategoryLimit
	}

	total, categories := distribution.ByCategory(h.data.Records(), field, limit)
	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"categories": categories,
	})
}

// GetMoveOuts returns the 30-day move-out calendar.
func (h *Handler) GetMoveOuts(c *gin.Context) {
	calendar := metrics.DailyMoveOuts(h.data.Records(), h.data.Now())
	c.JSON(http.StatusOK, calendar)
}

// GetDaysOnMarketHistogram returns the days-on-market histogram, its summary
// statistics, and the fixed aging buckets.
func (h *Handler) GetDaysOnMarketHistogram(c *gin.Context) {
	records := h.data.Records()
	stats, histogram := distribution.Histogram(records, "days_on_market")
	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"histogram": histogram,
		"ranges":    distribution.DaysOnMarketRanges(records),
	})
}

// GetDealStatusDistribution breaks down deal statuses among records with the
// given unit status.
func (h *Handler) GetDealStatusDistribution(c *gin.Context) {
	unitStatus := c.DefaultQuery("unit_status", "vacant")
	breakdown := distribution.DealStatusByUnitStatus(h.data.Records(), unitStatus)
	c.JSON(http.StatusOK, gin.H{
		"unit_status": unitStatus,
		"statuses":    breakdown,
	})
}

// GetFieldValues lists the distinct values of a field in first-seen order,
// the source for filter dropdowns.
func (h *Handler) GetFieldValues(c *gin.Context) {
	field := c.Param("field")
	values := distribution.UniqueValues(h.data.Records(), field)
	c.JSON(http.StatusOK, gin.H{
		"field":  field,
		"values": values,
	})
}

// TriggerRefresh starts an immediate upstream fetch.
func (h *Handler) TriggerRefresh(c *gin.Context) {
	h.refresher.TriggerRefresh()
	c.JSON(http.StatusOK, gin.H{
		"status": "Refresh process started",
	})
}
