package walletsync

import (
	"context"

	goelectrum "github.com/checksum0/go-electrum/electrum"
)

// ElectrumClient queries the peer connected for a currency.
type ElectrumClient interface {
	GetHistory(
		ctx context.Context, currency, scriptHash string,
	) ([]*goelectrum.GetMempoolResult, error)
	ListUnspent(
		ctx context.Context, currency, scriptHash string,
	) ([]*goelectrum.ListUnspentResult, error)
}

type historyItem struct {
	TxHash string
	Height int64
}

type unspent struct {
	TxHash string
	TxPos  uint32
	Height int64
	Value  uint64
}

func getHistory(
	ctx context.Context, client ElectrumClient, currency, scriptHash string,
) ([]historyItem, error) {
	res, err := client.GetHistory(ctx, currency, scriptHash)
	if err != nil {
		return nil, err
	}
	history := make([]historyItem, 0, len(res))
	for _, h := range res {
		if h == nil {
			continue
		}
		history = append(history, historyItem{
			TxHash: h.Hash,
			Height: int64(h.Height),
		})
	}
	return history, nil
}

func listUnspent(
	ctx context.Context, client ElectrumClient, currency, scriptHash string,
) ([]unspent, error) {
	res, err := client.ListUnspent(ctx, currency, scriptHash)
	if err != nil {
		return nil, err
	}
	unspents := make([]unspent, 0, len(res))
	for _, u := range res {
		if u == nil {
			continue
		}
		unspents = append(unspents, unspent{
			TxHash: u.Hash,
			TxPos:  u.Position,
			Height: int64(u.Height),
			Value:  u.Value,
		})
	}
	return unspents, nil
}
