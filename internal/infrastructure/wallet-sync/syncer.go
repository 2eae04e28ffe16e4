package walletsync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/wallet"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultGapLimit is the number of consecutive unused addresses after
	// which the scan of a chain stops.
	DefaultGapLimit       = 20
	maxConcurrentRequests = 8
)

var (
	// ErrMnemonicNotFound ...
	ErrMnemonicNotFound = errors.New("wallet mnemonic not found")

	networks = map[string]*chaincfg.Params{
		domain.Bitcoin:         wallet.BitcoinMainNet,
		domain.BitcoinTestnet:  wallet.BitcoinTestNet,
		domain.Litecoin:        wallet.LitecoinMainNet,
		domain.LitecoinTestnet: wallet.LitecoinTestNet,
	}
	scriptTypes = map[domain.AddressType]wallet.ScriptType{
		domain.AddressTypeLegacy: wallet.P2PKH,
		domain.AddressTypeSegwit: wallet.P2SH_P2WPKH,
		domain.AddressTypeBech32: wallet.P2WPKH,
	}
)

type syncer struct {
	repoManager ports.RepoManager
	secretStore ports.SecretStore
	client      ElectrumClient
	gapLimit    uint32
	now         func() time.Time
}

// NewSyncer returns a WalletSyncer that derives the wallet addresses from the
// mnemonic and the passphrase kept in the secret store and looks them up on
// the Electrum peer of the currency.
func NewSyncer(
	repoManager ports.RepoManager, secretStore ports.SecretStore,
	client ElectrumClient, gapLimit int,
) (ports.WalletSyncer, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if secretStore == nil {
		return nil, fmt.Errorf("missing secret store")
	}
	if client == nil {
		return nil, fmt.Errorf("missing electrum client")
	}
	if gapLimit <= 0 {
		gapLimit = DefaultGapLimit
	}

	return &syncer{
		repoManager, secretStore, client, uint32(gapLimit), time.Now,
	}, nil
}

func (s *syncer) Resync(ctx context.Context, walletID, currency string) error {
	w, err := s.repoManager.WalletRepository().GetWallet(ctx, walletID)
	if err != nil {
		return err
	}
	cfg, err := w.Config(currency)
	if err != nil {
		return err
	}

	account, err := s.account(ctx, walletID, currency, cfg)
	if err != nil {
		return err
	}

	start := s.now()
	state, err := s.scan(ctx, currency, account)
	if err != nil {
		return fmt.Errorf("failed to scan %s addresses: %w", currency, err)
	}

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, walletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.ApplySync(currency, *state, s.now()), nil
		},
	); err != nil {
		return err
	}

	log.Debugf(
		"synced %s of wallet %s in %s: %d addresses, %d utxos",
		currency, walletID, s.now().Sub(start),
		len(state.Addresses)+len(state.ChangeAddresses), len(state.Utxos),
	)
	return nil
}

func (s *syncer) account(
	ctx context.Context, walletID, currency string, cfg domain.WalletCryptoConfig,
) (*wallet.Account, error) {
	network, ok := networks[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, currency)
	}

	mnemonic, found, err := s.secretStore.Get(ctx, domain.MnemonicSecretKey(walletID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMnemonicNotFound, walletID)
	}
	passphrase, _, err := s.secretStore.Get(ctx, domain.PassphraseSecretKey(walletID))
	if err != nil {
		return nil, err
	}

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletOpts{
		SigningMnemonic: strings.Fields(mnemonic),
		Passphrase:      passphrase,
		Network:         network,
	})
	if err != nil {
		return nil, err
	}

	return w.Account(wallet.AccountOpts{
		Purpose:    cfg.KeyDerivationPath.Purpose(),
		CoinType:   domain.CoinType(currency),
		ScriptType: scriptTypes[cfg.AddressType],
	})
}

type scannedAddress struct {
	addr    *wallet.Address
	history []historyItem
}

func (s *syncer) scan(
	ctx context.Context, currency string, account *wallet.Account,
) (*domain.ChainState, error) {
	external, lastExternal, err := s.scanChain(
		ctx, currency, account, wallet.ExternalChain,
	)
	if err != nil {
		return nil, err
	}
	internal, lastInternal, err := s.scanChain(
		ctx, currency, account, wallet.InternalChain,
	)
	if err != nil {
		return nil, err
	}

	used := make([]scannedAddress, 0)
	for _, a := range append(append([]scannedAddress{}, external...), internal...) {
		if len(a.history) > 0 {
			used = append(used, a)
		}
	}

	utxos, err := s.listUtxos(ctx, currency, used)
	if err != nil {
		return nil, err
	}

	state := &domain.ChainState{
		AddressIndex:       uint32(lastExternal + 1),
		ChangeAddressIndex: uint32(lastInternal + 1),
		Addresses:          toDomainAddresses(external),
		ChangeAddresses:    toDomainAddresses(internal),
		Transactions:       toDomainTransactions(used),
		Utxos:              utxos,
	}
	for _, u := range utxos {
		if u.IsConfirmed() {
			state.ConfirmedBalance += int64(u.Value)
		} else {
			state.UnconfirmedBalance += int64(u.Value)
		}
	}
	return state, nil
}

// scanChain derives and looks up addresses in batches of gap limit size until
// gap limit consecutive ones have no history. It returns the used addresses
// plus the first unused one, and the index of the last used address (-1 if
// none).
func (s *syncer) scanChain(
	ctx context.Context, currency string, account *wallet.Account, chain uint32,
) ([]scannedAddress, int, error) {
	scanned := make([]scannedAddress, 0, s.gapLimit)
	lastUsed := -1

	for next := uint32(0); int(next)-(lastUsed+1) < int(s.gapLimit); next += s.gapLimit {
		batch := make([]scannedAddress, s.gapLimit)
		for i := range batch {
			addr, err := account.DeriveAddress(chain, next+uint32(i))
			if err != nil {
				return nil, -1, err
			}
			batch[i].addr = addr
		}

		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(maxConcurrentRequests)
		for i := range batch {
			i := i
			scriptHash := batch[i].addr.ScriptHash()
			eg.Go(func() error {
				history, err := getHistory(gctx, s.client, currency, scriptHash)
				if err != nil {
					return err
				}
				batch[i].history = history
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, -1, err
		}

		for i, a := range batch {
			if len(a.history) > 0 {
				lastUsed = int(next) + i
			}
		}
		scanned = append(scanned, batch...)
	}

	return scanned[:lastUsed+2], lastUsed, nil
}

func (s *syncer) listUtxos(
	ctx context.Context, currency string, addresses []scannedAddress,
) ([]domain.Utxo, error) {
	lock := &sync.Mutex{}
	utxos := make([]domain.Utxo, 0)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentRequests)
	for _, a := range addresses {
		addr := a.addr
		eg.Go(func() error {
			unspents, err := listUnspent(gctx, s.client, currency, addr.ScriptHash())
			if err != nil {
				return err
			}

			lock.Lock()
			defer lock.Unlock()
			for _, u := range unspents {
				utxos = append(utxos, domain.Utxo{
					Txid:    u.TxHash,
					Vout:    u.TxPos,
					Value:   u.Value,
					Height:  u.Height,
					Address: addr.Address,
				})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(utxos, func(i, j int) bool {
		return utxos[i].Key() < utxos[j].Key()
	})
	return utxos, nil
}

func toDomainAddresses(scanned []scannedAddress) []domain.Address {
	addresses := make([]domain.Address, 0, len(scanned))
	for _, a := range scanned {
		addresses = append(addresses, domain.Address{
			Address: a.addr.Address,
			Path:    a.addr.DerivationPath,
			Index:   a.addr.Index,
		})
	}
	return addresses
}

// toDomainTransactions returns the deduplicated history of the addresses,
// confirmed ones first by height, unconfirmed ones last.
func toDomainTransactions(scanned []scannedAddress) []domain.Transaction {
	heights := make(map[string]int64)
	for _, a := range scanned {
		for _, h := range a.history {
			heights[h.TxHash] = h.Height
		}
	}

	txs := make([]domain.Transaction, 0, len(heights))
	for txid, height := range heights {
		txs = append(txs, domain.Transaction{Txid: txid, Height: height})
	}
	sort.Slice(txs, func(i, j int) bool {
		hi, hj := txs[i].Height, txs[j].Height
		if (hi > 0) != (hj > 0) {
			return hi > 0
		}
		if hi != hj {
			return hi < hj
		}
		return txs[i].Txid < txs[j].Txid
	})
	return txs
}
