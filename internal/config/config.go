package config

import (
	"os"
	"strings"
)

const (
	DefaultSecretName       = "userapp/env-variables"
	DefaultMetricsNamespace = "UserApp/Auth"
)

type Config struct {
	AppLogLevel      string
	AWSRegion        string
	DebugEnabled     bool
	DebugDataPath    string
	MetricsEnabled   bool
	MetricsHashEmail bool
	MetricsNamespace string
	SecretName       string
	UserPoolID       string
	UserPoolClientID string
}

func New() (*Config, error) {
	cfg := &Config{
		AppLogLevel:      os.Getenv("APP_LOG_LEVEL"),
		AWSRegion:        strings.TrimSpace(os.Getenv("AWS_REGION")),
		DebugEnabled:     os.Getenv("APP_DEBUG_ENABLED") == "true",
		DebugDataPath:    os.Getenv("APP_DEBUG_DATA_PATH"),
		MetricsEnabled:   os.Getenv("APP_METRICS_ENABLED") == "true",
		MetricsHashEmail: os.Getenv("APP_METRICS_HASH_EMAIL") == "true",
		MetricsNamespace: strings.TrimSpace(os.Getenv("APP_METRICS_NAMESPACE")),
		SecretName:       strings.TrimSpace(os.Getenv("APP_SECRET_NAME")),
		UserPoolID:       os.Getenv("USER_POOL_ID"),
		UserPoolClientID: os.Getenv("USER_POOL_CLIENT_ID"),
	}

	if cfg.SecretName == "" {
		cfg.SecretName = DefaultSecretName
	}

	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = DefaultMetricsNamespace
	}

	if cfg.DebugEnabled {
		cfg.AppLogLevel = "debug"
	}

	return cfg, nil
}
