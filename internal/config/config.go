package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"alumniportal/pkg/config"
)

type Config struct {
	DB      config.DBConfig      `yaml:"db"`
	Redis   config.RedisConfig   `yaml:"redis"`
	MQ      config.MQConfig      `yaml:"mq"`
	JWT     config.JWTConfig     `yaml:"jwt"`
	Server  config.ServerConfig  `yaml:"server"`
	Storage config.StorageConfig `yaml:"storage"`
	SMTP    config.SMTPConfig    `yaml:"smtp"`
	OTP     config.OTPConfig     `yaml:"otp"`
	Admin   config.AdminConfig   `yaml:"admin"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideStorageFromEnv(&cfg.Storage)
	config.OverrideSMTPFromEnv(&cfg.SMTP)
	config.OverrideAdminFromEnv(&cfg.Admin)

	if cfg.OTP.Backend == "" {
		cfg.OTP.Backend = "redis"
	}
	if cfg.OTP.ExpireMinutes == 0 {
		cfg.OTP.ExpireMinutes = 10
	}
	if cfg.OTP.MaxRequests == 0 {
		cfg.OTP.MaxRequests = 5
	}
	if cfg.OTP.WindowMinutes == 0 {
		cfg.OTP.WindowMinutes = 10
	}

	return &cfg
}
