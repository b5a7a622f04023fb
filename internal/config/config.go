package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// 候选词库，每局随机抽取一个词作为谜底
	Words []string `mapstructure:"words"`

	// 讨论阶段时长（秒）
	DiscussionSeconds int `mapstructure:"discussion_seconds"`
	// 亮牌到讨论开始的延迟（秒），留给玩家私下查看身份
	RevealDelaySeconds int `mapstructure:"reveal_delay_seconds"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("discussion_seconds", 300)
	v.SetDefault("reveal_delay_seconds", 15)

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("加载配置失败: %w", err))
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	return &config
}
