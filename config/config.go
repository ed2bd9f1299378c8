package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Genesis describes the config record seeded on first boot when the store
// holds no config yet. Addresses are bech32 strings.
type Genesis struct {
	Admin                string   `toml:"Admin"`
	FeeVault             string   `toml:"FeeVault"`
	DestinationVault     string   `toml:"DestinationVault"`
	BookingFeeBps        uint32   `toml:"BookingFeeBps"`
	AllowedPaymentTokens []string `toml:"AllowedPaymentTokens"`
}

type Config struct {
	DataDir        string  `toml:"DataDir"`
	LogFile        string  `toml:"LogFile"`
	Environment    string  `toml:"Environment"`
	MetricsAddress string  `toml:"MetricsAddress"`
	Genesis        Genesis `toml:"Genesis"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = defaultDataDir(path)
	}
	if strings.TrimSpace(cfg.MetricsAddress) == "" {
		cfg.MetricsAddress = "127.0.0.1:9405"
	}
	if cfg.Genesis.AllowedPaymentTokens == nil {
		cfg.Genesis.AllowedPaymentTokens = []string{}
	}
	if cfg.Genesis.BookingFeeBps > 10_000 {
		return nil, fmt.Errorf("config file %s: BookingFeeBps must not exceed 10000", path)
	}

	return cfg, nil
}

// HasGenesis reports whether the config carries enough genesis material to
// seed the config record.
func (c *Config) HasGenesis() bool {
	return strings.TrimSpace(c.Genesis.Admin) != "" &&
		strings.TrimSpace(c.Genesis.FeeVault) != "" &&
		strings.TrimSpace(c.Genesis.DestinationVault) != ""
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{
		DataDir:        defaultDataDir(path),
		MetricsAddress: "127.0.0.1:9405",
		Genesis: Genesis{
			AllowedPaymentTokens: []string{},
		},
	}
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDataDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "data")
}

func persist(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
