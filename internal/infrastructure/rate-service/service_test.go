package rateservice_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	rateservice "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/rate-service"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestFetchRate(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("ids")
		fiat := r.URL.Query().Get("vs_currencies")
		prices := map[string]string{"bitcoin": "43012.55", "litecoin": "71.2"}
		fmt.Fprintf(w, `{"%s":{"%s":%s}}`, id, fiat, prices[id])
	})
	mux.HandleFunc("/v2/assets/bitcoin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"bitcoin","priceUsd":"43100.1234"}}`)
	})
	mux.HandleFunc("/v2/assets/litecoin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := rateservice.NewService(rateservice.Config{
		CoingeckoURL: server.URL,
		CoincapURL:   server.URL,
	})

	require.Equal(
		t, []string{domain.RateSourceCoincap, domain.RateSourceCoingecko},
		svc.ListSources(),
	)

	tests := []struct {
		name         string
		currency     string
		fiat         string
		source       string
		expectedRate string
	}{
		{
			name:         "coingecko bitcoin",
			currency:     domain.Bitcoin,
			fiat:         "usd",
			source:       domain.RateSourceCoingecko,
			expectedRate: "43012.55",
		},
		{
			name:         "coingecko testnet priced as mainnet",
			currency:     domain.LitecoinTestnet,
			fiat:         "EUR",
			source:       domain.RateSourceCoingecko,
			expectedRate: "71.2",
		},
		{
			name:         "coincap bitcoin",
			currency:     domain.BitcoinTestnet,
			fiat:         "usd",
			source:       domain.RateSourceCoincap,
			expectedRate: "43100.1234",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rate, err := svc.FetchRate(ctx, tt.currency, tt.fiat, tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.expectedRate, rate.String())
		})
	}
}

func TestFailingFetchRate(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/assets/litecoin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := rateservice.NewService(rateservice.Config{
		CoingeckoURL: server.URL,
		CoincapURL:   server.URL,
	})

	tests := []struct {
		name        string
		currency    string
		fiat        string
		source      string
		expectedErr error
	}{
		{
			name:        "unknown source",
			currency:    domain.Bitcoin,
			fiat:        "usd",
			source:      "kraken",
			expectedErr: domain.ErrUnknownRateSource,
		},
		{
			name:        "coincap non usd fiat",
			currency:    domain.Bitcoin,
			fiat:        "eur",
			source:      domain.RateSourceCoincap,
			expectedErr: rateservice.ErrUnsupportedFiat,
		},
		{
			name:        "coingecko missing price",
			currency:    domain.Bitcoin,
			fiat:        "xyz",
			source:      domain.RateSourceCoingecko,
			expectedErr: rateservice.ErrUnsupportedFiat,
		},
		{
			name:        "unsupported currency",
			currency:    "dogecoin",
			fiat:        "usd",
			source:      domain.RateSourceCoingecko,
			expectedErr: rateservice.ErrUnsupportedCurrency,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.FetchRate(ctx, tt.currency, tt.fiat, tt.source)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}

	t.Run("bad status", func(t *testing.T) {
		_, err := svc.FetchRate(ctx, domain.Litecoin, "usd", domain.RateSourceCoincap)
		require.Error(t, err)
		require.Contains(t, err.Error(), "429")
	})
}
