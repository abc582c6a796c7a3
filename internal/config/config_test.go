package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapcore/internal/application"
	"swapcore/internal/domain"
	"swapcore/internal/infrastructure/watcher"
)

func Test_Load_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SOURCE_TIMEOUT_MS", "WATCHER_POLL_MS", "SNAPSHOT_BACKEND", "OPERATOR_URL_MAINNET",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, DefaultHTTPPort, cfg.Port)
	require.Equal(t, application.DefaultSourceTimeout, cfg.SourceTimeout)
	require.Equal(t, watcher.DefaultPollInterval, cfg.WatcherPoll)
	require.Equal(t, "none", cfg.SnapshotBackend)
	require.Equal(t, "https://protocol-mainnet.gnosis.io/api", cfg.OperatorURLs[domain.Mainnet])
}

func Test_Load_Overrides(t *testing.T) {
	t.Setenv("SOURCE_TIMEOUT_MS", "1500")
	t.Setenv("WATCHER_POLL_MS", "2000")
	t.Setenv("PORT", "9090")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, int64(1500), cfg.SourceTimeout.Milliseconds())
	require.Equal(t, int64(2000), cfg.WatcherPoll.Milliseconds())
}
