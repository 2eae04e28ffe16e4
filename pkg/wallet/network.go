package wallet

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

var (
	// BitcoinMainNet ...
	BitcoinMainNet = &chaincfg.MainNetParams
	// BitcoinTestNet ...
	BitcoinTestNet = &chaincfg.TestNet3Params
	// LitecoinMainNet only overrides the fields of the bitcoin params used for
	// key derivation and address encoding.
	LitecoinMainNet = litecoinParams(
		chaincfg.MainNetParams, "litecoin", 0xdbb6c0fb, 0x30, 0x32, 0xb0, "ltc", 2,
	)
	// LitecoinTestNet ...
	LitecoinTestNet = litecoinParams(
		chaincfg.TestNet3Params, "litecoin-testnet", 0xf1c8d2fd, 0x6f, 0x3a, 0xef, "tltc", 1,
	)
)

func litecoinParams(
	base chaincfg.Params, name string, net uint32,
	pubKeyHashAddrID, scriptHashAddrID, privateKeyID byte,
	hrp string, coinType uint32,
) *chaincfg.Params {
	params := base
	params.Name = name
	params.Net = wire.BitcoinNet(net)
	params.PubKeyHashAddrID = pubKeyHashAddrID
	params.ScriptHashAddrID = scriptHashAddrID
	params.PrivateKeyID = privateKeyID
	params.Bech32HRPSegwit = hrp
	params.HDCoinType = coinType
	return &params
}
