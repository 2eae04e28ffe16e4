package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/config"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("MOONSHINE_DATADIR", datadir)
	t.Setenv("MOONSHINE_SECRET_STORE_PASSWORD_FILE", writeFile(t, "pwd", "secret\n"))
	t.Setenv("MOONSHINE_NETWORK_PEERS", writeFile(t, "peers.json", `{
		"litecoin": [{"host": "electrum.example.com", "port": 50002}]
	}`))
	t.Setenv("MOONSHINE_TRANSITION_DURATION", "250ms")

	require.NoError(t, config.InitConfig())

	require.Equal(t, datadir, config.GetDatadir())
	require.DirExists(t, filepath.Join(datadir, config.DbLocation))
	require.Equal(t, config.DBBadger, config.GetString(config.DBTypeKey))
	require.Equal(t, 20, config.GetInt(config.GapLimitKey))
	require.Equal(
		t, 250*time.Millisecond, config.GetDuration(config.TransitionDurationKey),
	)

	password, err := config.GetSecretStorePassword()
	require.NoError(t, err)
	require.Equal(t, "secret", password)

	peers, err := config.GetNetworkPeers()
	require.NoError(t, err)
	require.Equal(t, map[string][]domain.Peer{
		domain.Litecoin: {{Host: "electrum.example.com", Port: 50002}},
	}, peers)
}

func TestFailingInitConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing password file",
			env:  map[string]string{},
		},
		{
			name: "unknown db type",
			env: map[string]string{
				"MOONSHINE_SECRET_STORE_PASSWORD_FILE": "pwd",
				"MOONSHINE_DB_TYPE":                    "postgres",
			},
		},
		{
			name: "invalid gap limit",
			env: map[string]string{
				"MOONSHINE_SECRET_STORE_PASSWORD_FILE": "pwd",
				"MOONSHINE_GAP_LIMIT":                  "0",
			},
		},
		{
			name: "invalid network peers",
			env: map[string]string{
				"MOONSHINE_SECRET_STORE_PASSWORD_FILE": "pwd",
				"MOONSHINE_NETWORK_PEERS": writeFile(
					t, "peers.json", `{"dogecoin": [{"host": "a", "port": 1}]}`,
				),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MOONSHINE_DATADIR", t.TempDir())
			t.Setenv("MOONSHINE_SECRET_STORE_PASSWORD_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Error(t, config.InitConfig())
		})
	}
}
