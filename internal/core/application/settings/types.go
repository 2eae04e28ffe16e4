package settings

import (
	"errors"
	"fmt"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

const noPeerConnected = "No peer connected"

var rateSourceURLs = map[string]string{
	domain.RateSourceCoingecko: "coingecko.com",
	domain.RateSourceCoincap:   "coincap.io",
}

// Status is what the settings screen needs to render its busy indicators.
type Status struct {
	Rescanning    bool
	Connecting    bool
	HasPassphrase bool
	ActivePanel   domain.Panel
	Selection     domain.Selection
	CurrentPeer   domain.Peer
}

// ExchangeRateSourceURL returns the homepage of the rate source, or "?" if
// unknown.
func ExchangeRateSourceURL(source string) string {
	if url, ok := rateSourceURLs[source]; ok {
		return url
	}
	return "?"
}

// DerivationPathTemplate returns the path of the first receiving address
// derived with the given purpose for the currency.
func DerivationPathTemplate(path domain.DerivationPath, currency string) string {
	return path.Template(domain.CoinType(currency))
}

// NumberedWords formats the words of a mnemonic as "1. word".
func NumberedWords(words []string) []string {
	numbered := make([]string, 0, len(words))
	for i, w := range words {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, w))
	}
	return numbered
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrWalletNotFound)
}
