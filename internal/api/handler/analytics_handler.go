package handler

import (
	"film-vault/internal/api/dto"
	"film-vault/internal/api/response"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// VisitorStats 访客列表
// @Summary 访客列表
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.VisitorStatsData
// @Router /api/visitor-stats/ [get]
func (h *AnalyticsHandler) VisitorStats(c *gin.Context) {
	data, err := h.analyticsService.VisitorStats(c.Request.Context())
	if err != nil {
		analyticsError(c, err)
		return
	}
	response.OK(c, data)
}

// VisitorChart 最近 7 天访客图表
// @Summary 7 日访客
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DataList[dto.ChartPoint]
// @Router /api/visitor-chart/ [get]
func (h *AnalyticsHandler) VisitorChart(c *gin.Context) {
	points, err := h.analyticsService.VisitorChart(c.Request.Context())
	if err != nil {
		analyticsError(c, err)
		return
	}
	response.OK(c, dto.DataList[dto.ChartPoint]{Data: points})
}

// VisitorCountry 国家分布
// @Summary 访客国家分布
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DataList[dto.CountryPoint]
// @Router /api/visitor-country/ [get]
func (h *AnalyticsHandler) VisitorCountry(c *gin.Context) {
	points, err := h.analyticsService.VisitorCountries(c.Request.Context())
	if err != nil {
		analyticsError(c, err)
		return
	}
	response.OK(c, dto.DataList[dto.CountryPoint]{Data: points})
}

// VisitorMap 地图数据
// @Summary 访客地图
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DataList[dto.MapPoint]
// @Router /api/visitor-map/ [get]
func (h *AnalyticsHandler) VisitorMap(c *gin.Context) {
	points, err := h.analyticsService.VisitorMap(c.Request.Context())
	if err != nil {
		analyticsError(c, err)
		return
	}
	response.OK(c, dto.DataList[dto.MapPoint]{Data: points})
}

func analyticsError(c *gin.Context, err error) {
	logger.Error("Analytics query failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.InternalError(c, "Internal server error")
}
