package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leasedash/server/internal/dataset"
)

func SetupRoutes(router *gin.Engine, data *dataset.Service, refresher RefreshTrigger, logger *logrus.Logger) {
	handler := NewHandler(data, refresher, logger)

	api := router.Group("/api")
	{
		api.GET("/records", handler.GetRecords)
		api.GET("/metrics/summary", handler.GetSummary)
		api.POST("/metrics/scalar", handler.ComputeMetric)
		api.POST("/metrics/average", handler.ComputeAverage)
		api.GET("/metrics/move-outs", handler.GetMoveOuts)
		api.GET("/metrics/dom-histogram", handler.GetDaysOnMarketHistogram)
		api.GET("/metrics/deal-status-distribution", handler.GetDealStatusDistribution)
		api.POST("/charts/grouped", handler.GetGroupedChart)
		api.GET("/charts/category", handler.GetCategoryChart)
		api.GET("/fields/:field/values", handler.GetFieldValues)
		api.POST("/refresh", handler.TriggerRefresh)
	}
}
