package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Search struct {
		LiveLimit        int `yaml:"live_limit"`         // rows fetched for the live dropdown
		MaxResults       int `yaml:"max_results"`        // rows fetched for a full search, 0 = unlimited
		QueryTimeoutSec  int `yaml:"query_timeout_sec"`  // candidate query timeout
		LogRetentionDays int `yaml:"log_retention_days"` // search history retention
		RecentLimit      int `yaml:"recent_limit"`       // default size of the recent searches list
	} `yaml:"search"`
	Timeouts struct {
		ReadSec  int `yaml:"read_sec"`
		WriteSec int `yaml:"write_sec"`
		IdleSec  int `yaml:"idle_sec"`
	} `yaml:"timeouts"`
	Debug struct {
		Enabled      bool `yaml:"enabled"`
		PruneFreqSec int  `yaml:"prune_freq_sec"` // debug模式下清理间隔，单位：秒
	} `yaml:"debug"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"`
		PruneHour        int `yaml:"prune_hour"`
		PruneMinute      int `yaml:"prune_minute"`
	} `yaml:"scheduler"`
}

// Load reads config.yaml from the working directory, falling back to the
// environment when the file is missing or unreadable.
func Load() *Config {
	return LoadFile("config.yaml")
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) *Config {
	// 忽略错误，如果.env文件不存在，继续使用系统环境变量
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return loadFromEnv()
	}

	cfg, err := Parse(data)
	if err != nil {
		log.Printf("Error loading %s: %v, falling back to environment variables", path, err)
		return loadFromEnv()
	}
	log.Printf("Loading configuration from %s", path)
	return cfg
}

// Parse decodes YAML, applies environment overrides and defaults, and
// computes derived fields.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		cfg.DB.DSN = buildDSN(&cfg)
	}
	return &cfg, nil
}

func loadFromEnv() *Config {
	var cfg Config

	applyEnv(&cfg)
	applyDefaults(&cfg)
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		cfg.DB.DSN = buildDSN(&cfg)
	}

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("DATABASE_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = 3306
	}
	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}
	if cfg.Search.LiveLimit <= 0 {
		cfg.Search.LiveLimit = 5
	}
	if cfg.Search.MaxResults < 0 {
		cfg.Search.MaxResults = 0
	}
	if cfg.Search.QueryTimeoutSec <= 0 {
		cfg.Search.QueryTimeoutSec = 5
	}
	if cfg.Search.LogRetentionDays <= 0 {
		cfg.Search.LogRetentionDays = 30
	}
	if cfg.Search.RecentLimit <= 0 {
		cfg.Search.RecentLimit = 10
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
	if cfg.Debug.PruneFreqSec <= 0 {
		cfg.Debug.PruneFreqSec = 1800
	}
}

func buildDSN(cfg *Config) string {
	parseTime := ""
	if cfg.DB.ParseTime {
		parseTime = "&parseTime=true"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
		cfg.DB.Charset,
		parseTime)
}
