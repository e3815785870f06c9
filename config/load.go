package config

import (
	"errors"
	"io/fs"
	"log"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// envPrefix 环境变量前缀，例如 COUCOU_PORT、COUCOU_DATABASE_DRIVER
const envPrefix = "COUCOU"

var (
	cfg  *Config
	once sync.Once
)

// Init 按 .env -> config.yaml -> 环境变量 的顺序加载配置，后者覆盖前者
func Init() {
	once.Do(func() {
		c, err := Load(".")
		if err != nil {
			log.Fatalf("加载配置失败: %v", err)
		}
		cfg = c
	})
}

// Get 获取全局配置，未初始化时使用默认配置
func Get() *Config {
	if cfg == nil {
		Set(Default())
	}
	return cfg
}

// Set 替换全局配置，测试中使用
func Set(c *Config) {
	cfg = c
}

// Load 从指定目录读取配置，不修改全局配置
func Load(dir string) (*Config, error) {
	// .env 文件可选
	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("未加载 .env 文件: %v", err)
	}

	c := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(dir + "/config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else if err := v.Unmarshal(c); err != nil {
		return nil, err
	}

	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, err
	}
	applyDefaults(c)
	return c, nil
}

// Default 返回开箱即用的本地开发配置
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Mode == "" {
		c.Mode = ModeDebug
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSqlite
	}
	if c.Database.Driver == DriverSqlite && c.Database.DSN == "" {
		c.Database.DSN = "coucou.db"
	}
	if c.JWT.AccessSecret == "" {
		c.JWT.AccessSecret = "coucou-dev-secret"
	}
	if c.JWT.AccessExpire <= 0 {
		c.JWT.AccessExpire = 7 * 24 * 3600
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Polish.Endpoint == "" {
		c.Polish.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.Polish.Model == "" {
		c.Polish.Model = "gemini-3-flash-preview"
	}
	if c.Polish.TimeoutSeconds <= 0 {
		c.Polish.TimeoutSeconds = 15
	}
	if c.Health.IntervalSeconds <= 0 {
		c.Health.IntervalSeconds = 60
	}
	if c.OTel.ServiceName == "" {
		c.OTel.ServiceName = "coucou-server"
	}
}
