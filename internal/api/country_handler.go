package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"GasEmissions/internal/repository"
	"GasEmissions/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CountryHandler 国家列表与国家详情查询接口
type CountryHandler struct {
	emissionService *service.EmissionService
	logger          *logrus.Logger
}

// NewCountryHandler 创建 CountryHandler
func NewCountryHandler(db *gorm.DB, logger *logrus.Logger) *CountryHandler {
	svc := service.NewEmissionService(
		repository.NewCountryRepository(db),
		repository.NewEmissionRepository(db),
		logger,
	)
	return &CountryHandler{
		emissionService: svc,
		logger:          logger,
	}
}

type countryURI struct {
	ID int64 `uri:"id"`
}

type countryDataQuery struct {
	StartYear int64  `form:"startYear,default=0"`
	EndYear   int64  `form:"endYear,default=3000"`
	Gas       string `form:"gas"`
}

// ListCountries 国家列表（含起止年份）
// GET /countries/
func (h *CountryHandler) ListCountries(c *gin.Context) {
	result, err := h.emissionService.ListCountries(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListCountries failed")
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCountryData 单个国家逐年数据
// GET /country/:id?startYear=0&endYear=3000&gas=co2%20and%20ch4
func (h *CountryHandler) GetCountryData(c *gin.Context) {
	var uri countryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}
	var query countryDataQuery
	if err := c.ShouldBindQuery(&query); err != nil || hasEmptyYear(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startYear and endYear must be integers"})
		return
	}

	result, err := h.emissionService.GetCountryData(c.Request.Context(), service.CountryDataParams{
		CountryID: uri.ID,
		StartYear: query.StartYear,
		EndYear:   query.EndYear,
		Gas:       query.Gas,
	})
	if err != nil {
		h.logger.WithError(err).WithField("country_id", uri.ID).Error("GetCountryData failed")
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// hasEmptyYear startYear/endYear 出现但为空值（如 ?endYear=），不回落到默认值
func hasEmptyYear(c *gin.Context) bool {
	for _, key := range []string{"startYear", "endYear"} {
		if v, ok := c.GetQuery(key); ok && strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func errorStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
