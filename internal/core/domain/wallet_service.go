package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var satsPerCoin = decimal.New(1, 8)

// The methods below never mutate the receiver. Each returns an updated copy
// so that repositories can apply them inside a single transactional update.

// WithAddressType sets the address type of the currency along with its
// canonical derivation path.
func (w Wallet) WithAddressType(currency string, t AddressType) (*Wallet, error) {
	if _, ok := w.Configs[currency]; !ok {
		return nil, ErrWalletConfigNotFound
	}

	updated := w.Copy()
	updated.Configs[currency] = CurrencyConfig{
		AddressType:       t,
		KeyDerivationPath: t.DerivationPath(),
	}
	return updated, nil
}

// WithKeyDerivationPath overrides the derivation path of the currency and
// leaves its address type untouched.
func (w Wallet) WithKeyDerivationPath(
	currency string, path DerivationPath,
) (*Wallet, error) {
	cfg, ok := w.Configs[currency]
	if !ok {
		return nil, ErrWalletConfigNotFound
	}

	updated := w.Copy()
	cfg.KeyDerivationPath = path
	updated.Configs[currency] = cfg
	return updated, nil
}

// ResetForPassphrase brings every chain-derived field back to its creation
// default. Backup info, last update time and the crypto configs survive since
// they describe the wallet identity rather than derivation state.
func (w Wallet) ResetForPassphrase(hasPassphrase bool) *Wallet {
	reset := emptyWallet(w.ID)
	reset.LastUpdated = w.LastUpdated
	reset.HasBackedUpWallet = w.HasBackedUpWallet
	reset.WalletBackupTimestamp = w.WalletBackupTimestamp
	reset.HasPassphrase = hasPassphrase
	for currency, cfg := range w.Configs {
		reset.Configs[currency] = cfg
		reset.ChainStates[currency] = ChainState{}
	}
	return reset
}

// ResetChainState wipes the chain state of a single currency.
func (w Wallet) ResetChainState(currency string) *Wallet {
	updated := w.Copy()
	updated.ChainStates[currency] = ChainState{}
	return updated
}

// MarkBackedUp records that the recovery phrase has been displayed.
func (w Wallet) MarkBackedUp(at time.Time) *Wallet {
	updated := w.Copy()
	updated.HasBackedUpWallet = true
	updated.WalletBackupTimestamp = at
	return updated
}

// ApplySync replaces the chain state of the currency with the one computed by
// the sync engine.
func (w Wallet) ApplySync(currency string, state ChainState, at time.Time) *Wallet {
	updated := w.Copy()
	updated.ChainStates[currency] = state.clone()
	updated.LastUpdated = at
	return updated
}

// WithFiatBalance recomputes the fiat value of the currency's spendable utxos
// for the given exchange rate.
func (w Wallet) WithFiatBalance(currency string, rate decimal.Decimal) *Wallet {
	updated := w.Copy()
	sats := decimal.NewFromInt(int64(w.SpendableAmount(currency)))
	updated.FiatBalance[currency] = sats.Div(satsPerCoin).Mul(rate).Round(2)
	return updated
}

// WithPreviousFiatBalance restores a fiat balance read before an update. A
// nil balance means the currency had none.
func (w Wallet) WithPreviousFiatBalance(
	currency string, balance *decimal.Decimal,
) *Wallet {
	updated := w.Copy()
	if balance == nil {
		delete(updated.FiatBalance, currency)
		return updated
	}
	updated.FiatBalance[currency] = *balance
	return updated
}

// SpendableAmount returns the sum of the currency's utxos, blacklisted ones
// excluded.
func (w Wallet) SpendableAmount(currency string) uint64 {
	blacklisted := make(map[string]struct{})
	for _, key := range w.BlacklistedUtxos[currency] {
		blacklisted[key] = struct{}{}
	}

	var amount uint64
	for _, u := range w.ChainStates[currency].Utxos {
		if _, ok := blacklisted[u.Key()]; ok {
			continue
		}
		amount += u.Value
	}
	return amount
}

// Copy returns a deep copy of the wallet.
func (w Wallet) Copy() *Wallet {
	c := emptyWallet(w.ID)
	c.LastUpdated = w.LastUpdated
	c.HasBackedUpWallet = w.HasBackedUpWallet
	c.WalletBackupTimestamp = w.WalletBackupTimestamp
	c.HasPassphrase = w.HasPassphrase
	for k, v := range w.Configs {
		c.Configs[k] = v
	}
	for k, v := range w.ChainStates {
		c.ChainStates[k] = v.clone()
	}
	for k, v := range w.BlacklistedUtxos {
		c.BlacklistedUtxos[k] = append([]string{}, v...)
	}
	for k, v := range w.FiatBalance {
		c.FiatBalance[k] = v
	}
	return c
}

func (s ChainState) clone() ChainState {
	return ChainState{
		AddressIndex:       s.AddressIndex,
		ChangeAddressIndex: s.ChangeAddressIndex,
		Addresses:          append([]Address{}, s.Addresses...),
		ChangeAddresses:    append([]Address{}, s.ChangeAddresses...),
		Transactions:       append([]Transaction{}, s.Transactions...),
		Utxos:              append([]Utxo{}, s.Utxos...),
		ConfirmedBalance:   s.ConfirmedBalance,
		UnconfirmedBalance: s.UnconfirmedBalance,
	}
}
