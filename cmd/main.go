package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GasEmissions/internal/api"
	"GasEmissions/internal/config"
	"GasEmissions/internal/database"
	"GasEmissions/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := logging.New(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 连接数据库（ingest 与 API 使用同一配置）
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("连接数据库失败: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.WithError(err).Warn("关闭数据库连接失败")
		}
	}()

	// 4. 表不存在则创建（不清空已导入数据）
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("%v", err)
	}

	// 5. 路由
	gin.SetMode(cfg.Server.Mode)
	r := api.NewRouter(cfg, db, logger)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 启动服务，收到 SIGINT/SIGTERM 后优雅退出
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	go func() {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务失败: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("正在关闭服务…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("服务关闭失败")
	}
}
