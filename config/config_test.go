package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := write(t, "api_key: k\napi_secret: s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, []string{"USDT", "USDC", "BUSD"}, cfg.QuoteAssets)
	assert.Equal(t, ":8087", cfg.Listen)
	assert.Equal(t, 2017, cfg.Start.Year())
}

func TestLoadExplicitValues(t *testing.T) {
	path := write(t, `api_key: k
api_secret: s
data_dir: /tmp/folio
quote_assets: [USDT]
start: "2022-06-15"
listen: ":9001"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/folio", cfg.DataDir)
	assert.Equal(t, []string{"USDT"}, cfg.QuoteAssets)
	assert.Equal(t, time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC), cfg.Start)
	assert.Equal(t, filepath.Join("/tmp/folio", "trade_history.csv"), cfg.LedgerPath())
}

func TestLoadMissingCredentials(t *testing.T) {
	path := write(t, "data_dir: data\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBadStartDate(t *testing.T) {
	path := write(t, "api_key: k\napi_secret: s\nstart: 'June 2022'\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	in := Config{
		APIKey:      "k",
		APISecret:   "s",
		DataDir:     "data",
		QuoteAssets: []string{"USDT"},
		Start:       time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
		Listen:      ":9001",
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
