package main

import (
	"context"
	"log"
	"os"

	"GasEmissions/internal/config"
	"GasEmissions/internal/database"
	"GasEmissions/internal/logging"
	"GasEmissions/internal/service"

	"github.com/alexflint/go-arg"
)

type args struct {
	Source    string `arg:"positional" help:"CSV file or zip archive containing one (default: ingest.source from config)"`
	ConfigDir string `arg:"--config" default:"./config" help:"directory holding config.yaml"`
	BatchSize int    `arg:"--batch-size" help:"rows per insert statement (default: ingest.batch_size from config)"`
	Quiet     bool   `arg:"-q,--quiet" help:"do not show the progress bar"`
}

func (args) Description() string {
	return "Drops and re-seeds the countries/all_data tables from the emissions dataset"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.LoadConfig(a.ConfigDir)
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}
	if a.Source != "" {
		cfg.Ingest.Source = a.Source
	}
	if a.BatchSize > 0 {
		cfg.Ingest.BatchSize = a.BatchSize
	}

	logger := logging.New(cfg.Log)

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("连接数据库失败: %v", err)
	}

	opts := service.IngestOptions{
		Source:    cfg.Ingest.Source,
		BatchSize: cfg.Ingest.BatchSize,
	}
	if !a.Quiet {
		opts.Progress = os.Stderr
	}

	_, runErr := service.NewIngestService(db, logger).Run(context.Background(), opts)
	if err := database.Close(db); err != nil {
		logger.WithError(err).Warn("关闭数据库连接失败")
	}
	if runErr != nil {
		logger.Fatalf("导入失败: %v", runErr)
	}
}
