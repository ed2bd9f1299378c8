package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paymentd.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(path), "data"), cfg.DataDir)
	require.Equal(t, "127.0.0.1:9405", cfg.MetricsAddress)
	require.False(t, cfg.HasGenesis())

	// The default file must land on disk and load back cleanly.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.DataDir, again.DataDir)
}

func TestLoadReadsGenesis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paymentd.toml")
	raw := `
DataDir = "/var/lib/paymentd"
Environment = "staging"

[Genesis]
Admin = "nmz1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrujsuw"
FeeVault = "nmz1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrujsuw"
DestinationVault = "nmz1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrujsuw"
BookingFeeBps = 250
AllowedPaymentTokens = ["usdc-mint"]
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/paymentd", cfg.DataDir)
	require.Equal(t, "staging", cfg.Environment)
	require.Equal(t, "127.0.0.1:9405", cfg.MetricsAddress)
	require.True(t, cfg.HasGenesis())
	require.Equal(t, uint32(250), cfg.Genesis.BookingFeeBps)
	require.Equal(t, []string{"usdc-mint"}, cfg.Genesis.AllowedPaymentTokens)
}

func TestLoadRejectsExcessiveFeeRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paymentd.toml")
	raw := `
[Genesis]
BookingFeeBps = 10001
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "BookingFeeBps")
}
