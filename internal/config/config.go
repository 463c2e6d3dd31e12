package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（匹配 config/config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // HTTP 服务配置
	Database DatabaseConfig `mapstructure:"database"` // 数据库配置（ingest 与 API 共用）
	Ingest   IngestConfig   `mapstructure:"ingest"`   // 导入任务配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`            // 服务端口
	Mode           string        `mapstructure:"mode"`            // Gin运行模式：debug/release/test
	Pprof          bool          `mapstructure:"pprof"`           // 是否注册 pprof 路由
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 单个请求超时，0 表示不限制
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // sqlite / postgres
	DSN             string        `mapstructure:"dsn"`               // sqlite 为文件路径，postgres 为 URL 形式 DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 打印执行的 SQL
}

// IngestConfig 导入任务配置
type IngestConfig struct {
	Source    string `mapstructure:"source"`     // CSV 或包含 CSV 的 zip
	BatchSize int    `mapstructure:"batch_size"` // 批量插入大小
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // logrus 级别
	Format string `mapstructure:"format"` // text / json
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("server.request_timeout", "10s")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "gases.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.log_sql", false)

	v.SetDefault("ingest.source", "archive.zip")
	v.SetDefault("ingest.batch_size", 500)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig 从 dir/config.yaml 加载配置，文件不存在时使用默认值；敏感项/部署项从 .env 与环境变量覆盖
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 环境变量覆盖（优先级 env > yaml）
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖部署相关配置
func overrideFromEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("INGEST_SOURCE"); v != "" {
		cfg.Ingest.Source = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT 非法: %w", err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("未支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn 不能为空")
	}
	if c.Ingest.BatchSize <= 0 {
		return fmt.Errorf("ingest.batch_size 必须大于0: %d", c.Ingest.BatchSize)
	}
	return nil
}
