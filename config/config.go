package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/moyu-x/duplicate-finder/internal"
)

type Config struct {
	Database struct {
		Path string
	}
	Scanner struct {
		Heartbeat time.Duration
	}
	Performance struct {
		Workers int
	}
	Buffer struct {
		Ceiling uint32
		Floor   uint32
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

// Load 读取配置文件，path 为空时按默认路径查找
// 找不到配置文件时使用默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.duplicate-finder")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/duplicate-finder")
	}

	v.SetDefault("database.path", internal.DefaultDatabasePath)
	v.SetDefault("scanner.heartbeat", internal.DefaultHeartbeatInterval)
	v.SetDefault("performance.workers", internal.DefaultWorkers)
	v.SetDefault("buffer.ceiling", internal.DefaultBufferCeiling)
	v.SetDefault("buffer.floor", internal.DefaultBufferFloor)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, err
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}

	cfg = loaded
	return &cfg, nil
}

// Validate 检查缓冲区与并发配置
func (c *Config) Validate() error {
	if c.Buffer.Floor == 0 {
		return fmt.Errorf("buffer.floor 必须大于 0")
	}
	if c.Buffer.Ceiling < c.Buffer.Floor {
		return fmt.Errorf("buffer.ceiling (%d) 不能小于 buffer.floor (%d)", c.Buffer.Ceiling, c.Buffer.Floor)
	}
	if c.Performance.Workers < 1 {
		return fmt.Errorf("performance.workers 必须大于 0")
	}
	if c.Scanner.Heartbeat <= 0 {
		return fmt.Errorf("scanner.heartbeat 必须大于 0")
	}
	return nil
}

func Get() *Config {
	return &cfg
}
