package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrade/papertrade/internal/domain"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetYaml_FullConfig(t *testing.T) {
	path := writeYaml(t, `
balance: "50000"
risk_level: High
poll_price_interval: 5s
web_addr: ":9090"
wal_dir: "/tmp/papertrade-wal"
seed: 42
tls_domains:
  - example.com
cert_cache_dir: "/tmp/certs"
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)

	assert.True(t, cfg.Balance.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, domain.RiskHigh, cfg.RiskLevel)
	assert.Equal(t, 5*time.Second, cfg.PollPriceInterval)
	assert.Equal(t, ":9090", cfg.WebAddr)
	assert.Equal(t, "/tmp/papertrade-wal", cfg.WalDir)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, []string{"example.com"}, cfg.TLSDomains)
	assert.Equal(t, "/tmp/certs", cfg.CertCacheDir)
}

func TestGetYaml_DefaultsApplied(t *testing.T) {
	path := writeYaml(t, `{}`)

	cfg, err := getYaml(path)
	require.NoError(t, err)

	assert.True(t, cfg.Balance.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, domain.RiskMedium, cfg.RiskLevel)
	assert.Equal(t, DefaultPollPriceInterval, cfg.PollPriceInterval)
	assert.Equal(t, DefaultWebAddr, cfg.WebAddr)
	assert.Equal(t, DefaultWalDir, cfg.WalDir)
	assert.Zero(t, cfg.Seed)
}

func TestGetYaml_MissingFile(t *testing.T) {
	_, err := getYaml(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFromTmp_InvalidBalance(t *testing.T) {
	_, err := fromTmp(ConfigTmp{Balance: "not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance")
}

func TestFromTmp_NegativeBalance(t *testing.T) {
	_, err := fromTmp(ConfigTmp{Balance: "-100"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestFromTmp_InvalidRiskLevel(t *testing.T) {
	_, err := fromTmp(ConfigTmp{RiskLevel: "Reckless"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk_level")
}

func TestFromTmp_FractionalBalance(t *testing.T) {
	cfg, err := fromTmp(ConfigTmp{Balance: "12345.67"})
	require.NoError(t, err)
	assert.True(t, cfg.Balance.Equal(decimal.NewFromFloat(12345.67)))
}
