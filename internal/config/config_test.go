package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DefaultProfile)
	assert.Equal(t, "", cfg.DefaultRegion)
	assert.Equal(t, "", cfg.Database.Address)
}

func TestLoadFile_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`default_profile: my-profile
default_region: eu-west-1
report:
  bucket: audit-bucket
  prefix: iam
database:
  driver: pgx
  username: admin
  password: secret
  address: 127.0.0.1:5432/orders
  driver_location: /opt/client
  debug: true
  log_dir: /var/log/iam-audit
`), 0644)
	require.NoError(t, err)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my-profile", cfg.DefaultProfile)
	assert.Equal(t, "eu-west-1", cfg.DefaultRegion)
	assert.Equal(t, "audit-bucket", cfg.Report.Bucket)
	assert.Equal(t, "iam", cfg.Report.Prefix)
	assert.Equal(t, DatabaseConfig{
		Driver:         "pgx",
		Username:       "admin",
		Password:       "secret",
		Address:        "127.0.0.1:5432/orders",
		DriverLocation: "/opt/client",
		Debug:          true,
		LogDir:         "/var/log/iam-audit",
	}, cfg.Database)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_profile: [unterminated\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestMerge_CLIFlagsTakePrecedence(t *testing.T) {
	cfg := &Config{DefaultProfile: "config-profile", DefaultRegion: "us-east-1"}

	// CLI flags override
	p, r := cfg.Merge("cli-profile", "ap-south-1")
	assert.Equal(t, "cli-profile", p)
	assert.Equal(t, "ap-south-1", r)

	// Empty flags fall back to config
	p, r = cfg.Merge("", "")
	assert.Equal(t, "config-profile", p)
	assert.Equal(t, "us-east-1", r)

	// Partial override
	p, r = cfg.Merge("other", "")
	assert.Equal(t, "other", p)
	assert.Equal(t, "us-east-1", r)
}

func TestMergeDatabase(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "pgx",
		Username: "file-user",
		Password: "file-pass",
		Address:  "db:5432/app",
	}}

	got := cfg.MergeDatabase(DatabaseConfig{Username: "flag-user", Debug: true})
	assert.Equal(t, "pgx", got.Driver)
	assert.Equal(t, "flag-user", got.Username)
	assert.Equal(t, "file-pass", got.Password)
	assert.Equal(t, "db:5432/app", got.Address)
	assert.True(t, got.Debug)
}

func TestLoadLambda(t *testing.T) {
	t.Setenv("IAM_AUDIT_REGION", "eu-central-1")
	t.Setenv("IAM_AUDIT_REPORT_BUCKET", "audit-bucket")

	cfg, err := LoadLambda()
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "audit-bucket", cfg.ReportBucket)
	assert.Equal(t, "iam-reports", cfg.ReportPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
}
