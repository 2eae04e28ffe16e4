package rateservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	coingeckoURL = "https://api.coingecko.com"
	coincapURL   = "https://api.coincap.io"
)

var (
	// ErrUnsupportedFiat is returned when a source has no price for the
	// requested fiat currency.
	ErrUnsupportedFiat = errors.New("fiat currency not supported by source")
	// ErrUnsupportedCurrency ...
	ErrUnsupportedCurrency = errors.New("crypto currency not supported by source")

	// Testnet coins have no market so they're priced like their mainnet.
	assetIDs = map[string]string{
		domain.Bitcoin:         "bitcoin",
		domain.BitcoinTestnet:  "bitcoin",
		domain.Litecoin:        "litecoin",
		domain.LitecoinTestnet: "litecoin",
	}
)

func assetID(currency string) (string, error) {
	id, ok := assetIDs[currency]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return id, nil
}

type coingecko struct {
	baseURL string
}

func (c coingecko) url(currency, fiat string) (string, error) {
	id, err := assetID(currency)
	if err != nil {
		return "", err
	}
	query := url.Values{}
	query.Set("ids", id)
	query.Set("vs_currencies", fiat)
	return fmt.Sprintf("%s/api/v3/simple/price?%s", c.baseURL, query.Encode()), nil
}

// parse expects a body like {"bitcoin":{"usd":43012.55}}.
func (c coingecko) parse(body, currency, fiat string) (decimal.Decimal, error) {
	id, err := assetID(currency)
	if err != nil {
		return decimal.Zero, err
	}

	resp := make(map[string]map[string]json.Number)
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	price, ok := resp[id][fiat]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedFiat, fiat)
	}
	return decimal.NewFromString(price.String())
}

type coincap struct {
	baseURL string
}

// Coincap only quotes assets in usd.
func (c coincap) url(currency, fiat string) (string, error) {
	if fiat != domain.DefaultFiatCurrency {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFiat, fiat)
	}
	id, err := assetID(currency)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v2/assets/%s", c.baseURL, id), nil
}

// parse expects a body like {"data":{"id":"bitcoin","priceUsd":"43012.55"}}.
func (c coincap) parse(body, _, _ string) (decimal.Decimal, error) {
	var resp struct {
		Data struct {
			PriceUsd string `json:"priceUsd"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse coincap response: %w", err)
	}
	if resp.Data.PriceUsd == "" {
		return decimal.Zero, fmt.Errorf("coincap response has no price")
	}
	return decimal.NewFromString(resp.Data.PriceUsd)
}
