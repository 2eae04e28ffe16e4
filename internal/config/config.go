package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// SecretStorePasswordFileKey defines the full path to a file that contains
	// the password for unlocking the secret store
	SecretStorePasswordFileKey = "SECRET_STORE_PASSWORD_FILE"
	// PeerRequestTimeoutKey is the duration to wait for an Electrum peer to
	// reply before giving up
	PeerRequestTimeoutKey = "PEER_REQUEST_TIMEOUT"
	// PeerProbeRateKey is the max number of peers probed per second when
	// looking for a reachable one
	PeerProbeRateKey = "PEER_PROBE_RATE"
	// RateRequestTimeoutKey is the duration to wait for a rate source to reply
	RateRequestTimeoutKey = "RATE_REQUEST_TIMEOUT"
	// DefaultFiatKey is the fiat currency selected on first start
	DefaultFiatKey = "DEFAULT_FIAT"
	// TransitionDurationKey is the duration of the panels' crossfade
	TransitionDurationKey = "TRANSITION_DURATION"
	// FrameIntervalKey is the interval between two steps of the panels'
	// animation loop
	FrameIntervalKey = "FRAME_INTERVAL"
	// GapLimitKey is the number of consecutive unused addresses after which
	// the sync engine stops deriving
	GapLimitKey = "GAP_LIMIT"
	// NetworkPeersKey is the path of a JSON file overriding the default
	// Electrum peers, indexed by currency
	NetworkPeersKey = "NETWORK_PEERS"
	// PeerInsecureTLSKey skips the verification of the peers' certificates
	PeerInsecureTLSKey = "PEER_INSECURE_TLS"

	DbLocation = "db"

	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("moonshine-daemon", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MOONSHINE")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(HTTPListeningPortKey, 7070)
	vip.SetDefault(PeerRequestTimeoutKey, 15*time.Second)
	vip.SetDefault(PeerProbeRateKey, 5)
	vip.SetDefault(RateRequestTimeoutKey, 10*time.Second)
	vip.SetDefault(DefaultFiatKey, domain.DefaultFiatCurrency)
	vip.SetDefault(TransitionDurationKey, 500*time.Millisecond)
	vip.SetDefault(FrameIntervalKey, 16*time.Millisecond)
	vip.SetDefault(GapLimitKey, 20)
	vip.SetDefault(PeerInsecureTLSKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetSecretStorePassword returns the content of the password file.
func GetSecretStorePassword() (string, error) {
	buf, err := os.ReadFile(GetString(SecretStorePasswordFileKey))
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %s", err)
	}
	password := strings.TrimSpace(string(buf))
	if password == "" {
		return "", fmt.Errorf("password file is empty")
	}
	return password, nil
}

// GetNetworkPeers returns the Electrum peers loaded from file, or nil if the
// file is not defined.
func GetNetworkPeers() (map[string][]domain.Peer, error) {
	path := GetString(NetworkPeersKey)
	if path == "" {
		return nil, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network peers file: %s", err)
	}

	peers := make(map[string][]domain.Peer)
	if err := json.Unmarshal(buf, &peers); err != nil {
		return nil, fmt.Errorf("invalid network peers file: %s", err)
	}
	for currency, list := range peers {
		if !domain.IsSupportedCurrency(currency) {
			return nil, fmt.Errorf(
				"invalid network peers file: unsupported currency %s", currency,
			)
		}
		for _, p := range list {
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf(
					"invalid network peers file: %s peer %s: %s", currency, p, err,
				)
			}
		}
	}
	return peers, nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if GetString(SecretStorePasswordFileKey) == "" {
		return fmt.Errorf("missing secret store password file")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	port := GetInt(HTTPListeningPortKey)
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be a valid port", HTTPListeningPortKey)
	}

	if GetDuration(PeerRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", PeerRequestTimeoutKey)
	}
	if GetDuration(RateRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", RateRequestTimeoutKey)
	}
	if GetDuration(TransitionDurationKey) < 0 {
		return fmt.Errorf("%s must not be negative", TransitionDurationKey)
	}
	if GetDuration(FrameIntervalKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", FrameIntervalKey)
	}
	if GetInt(PeerProbeRateKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", PeerProbeRateKey)
	}
	if GetInt(GapLimitKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", GapLimitKey)
	}

	if _, err := GetNetworkPeers(); err != nil {
		return err
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
