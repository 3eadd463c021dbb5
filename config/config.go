// Package config loads the engine configuration from a yaml file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/papertrade/papertrade/internal/domain"
)

// Defaults applied when a value is omitted.
const (
	DefaultPollPriceInterval = 3 * time.Second
	DefaultWebAddr           = ":8080"
	DefaultWalDir            = "./wal/trades"
)

var defaultBalance = decimal.NewFromInt(25000)

type Config struct {
	// Balance starting cash of the demo account.
	Balance decimal.Decimal
	// RiskLevel default advisor risk tolerance.
	RiskLevel domain.RiskLevel
	// PollPriceInterval cadence of the background quote refresh ticker.
	PollPriceInterval time.Duration
	// WebAddr listen address of the dashboard server.
	WebAddr string
	// WalDir directory of the trade ledger WAL.
	WalDir string
	// Seed seeds the randomness source; 0 means time-based.
	Seed int64
	// TLSDomains enables automatic TLS for the given domains when non-empty.
	TLSDomains []string
	// CertCacheDir cache directory for ACME certificates.
	CertCacheDir string
}

// ConfigTmp mirrors the yaml file layout with string-typed numerics.
type ConfigTmp struct {
	Balance           string        `yaml:"balance,omitempty"`
	RiskLevel         string        `yaml:"risk_level,omitempty"`
	PollPriceInterval time.Duration `yaml:"poll_price_interval,omitempty"`
	WebAddr           string        `yaml:"web_addr,omitempty"`
	WalDir            string        `yaml:"wal_dir,omitempty"`
	Seed              int64         `yaml:"seed,omitempty"`
	TLSDomains        []string      `yaml:"tls_domains,omitempty"`
	CertCacheDir      string        `yaml:"cert_cache_dir,omitempty"`
}

// Get reads the configuration. With --config the yaml file wins, otherwise
// CLI flags are used.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	balance := flag.String("balance", defaultBalance.String(), "starting cash balance")
	riskLevel := flag.String("risklevel", string(domain.RiskMedium), "advisor risk tolerance: Low, Medium or High")
	pollInterval := flag.Duration("pollpriceinterval", DefaultPollPriceInterval, "background quote refresh interval")
	webAddr := flag.String("webaddr", DefaultWebAddr, "dashboard listen address")
	walDir := flag.String("waldir", DefaultWalDir, "trade ledger WAL directory")
	seed := flag.Int64("seed", 0, "randomness seed, 0 for time-based")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return fromTmp(ConfigTmp{
		Balance:           *balance,
		RiskLevel:         *riskLevel,
		PollPriceInterval: *pollInterval,
		WebAddr:           *webAddr,
		WalDir:            *walDir,
		Seed:              *seed,
	})
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	return fromTmp(tmp)
}

func fromTmp(tmp ConfigTmp) (Config, error) {
	cfg := Config{
		Balance:           defaultBalance,
		RiskLevel:         domain.RiskMedium,
		PollPriceInterval: DefaultPollPriceInterval,
		WebAddr:           DefaultWebAddr,
		WalDir:            DefaultWalDir,
		Seed:              tmp.Seed,
		TLSDomains:        tmp.TLSDomains,
		CertCacheDir:      tmp.CertCacheDir,
	}

	if tmp.Balance != "" {
		balance, err := decimal.NewFromString(tmp.Balance)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'balance' param (correct format is 25000): %w", err)
		}
		if balance.IsNegative() {
			return Config{}, fmt.Errorf("'balance' param must not be negative, got %s", balance.String())
		}
		cfg.Balance = balance
	}

	if tmp.RiskLevel != "" {
		risk, err := domain.ParseRiskLevel(tmp.RiskLevel)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'risk_level' param: %w", err)
		}
		cfg.RiskLevel = risk
	}

	if tmp.PollPriceInterval > 0 {
		cfg.PollPriceInterval = tmp.PollPriceInterval
	}
	if tmp.WebAddr != "" {
		cfg.WebAddr = tmp.WebAddr
	}
	if tmp.WalDir != "" {
		cfg.WalDir = tmp.WalDir
	}

	return cfg, nil
}
