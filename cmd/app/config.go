package main

import (
	"fmt"
	"strings"

	"tonix_miniapp/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	TelegramAuth TelegramAuthConfig `yaml:"telegramAuth"`
	Farming      FarmingConfig      `yaml:"farming"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `yaml:"telegramBotToken"`
	DebugMode        bool   `yaml:"debugMode"`
}

type FarmingConfig struct {
	CapHours            int     `yaml:"capHours"`
	MinCollect          float64 `yaml:"minCollect"`
	ReferralBonus       float64 `yaml:"referralBonus"`
	CommissionRate      float64 `yaml:"commissionRate"`
	CommissionQueueSize int     `yaml:"commissionQueueSize"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// An omitted farming section gets the game's standard economy; an
	// explicit zero in the file is kept as configured.
	viper.SetDefault("farming.capHours", 48)
	viper.SetDefault("farming.minCollect", 0.001)
	viper.SetDefault("farming.referralBonus", 5)
	viper.SetDefault("farming.commissionRate", 0.1)
	viper.SetDefault("farming.commissionQueueSize", 64)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
