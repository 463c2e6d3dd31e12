package api

import (
	"context"
	"time"

	"GasEmissions/internal/config"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter 创建 gin 引擎并注册全部路由
func NewRouter(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *gin.Engine {
	r := gin.Default()
	r.Use(requestTimeout(cfg.Server.RequestTimeout))

	// 注册 pprof 方便调试和监测性能问题
	if cfg.Server.Pprof {
		pprof.Register(r)
	}

	countryHandler := NewCountryHandler(db, logger)
	r.GET("/countries/", countryHandler.ListCountries)
	r.GET("/country/:id", countryHandler.GetCountryData)

	return r
}

// requestTimeout 为请求上下文设置超时，数据库查询随之取消
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
