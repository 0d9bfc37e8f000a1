package config

import "github.com/kelseyhightower/envconfig"

// LambdaConfig is read from the function's environment.
type LambdaConfig struct {
	Region       string `envconfig:"IAM_AUDIT_REGION"`
	ReportBucket string `envconfig:"IAM_AUDIT_REPORT_BUCKET"`
	ReportPrefix string `envconfig:"IAM_AUDIT_REPORT_PREFIX" default:"iam-reports"`
	LogLevel     string `envconfig:"IAM_AUDIT_LOG_LEVEL" default:"info"`
}

// LoadLambda reads LambdaConfig from environment variables.
func LoadLambda() (*LambdaConfig, error) {
	var cfg LambdaConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
