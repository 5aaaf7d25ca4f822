package orgmap

// defaultTable is the built-in alias table. It covers the identifiers
// that appear most often in EIP credits, core dev meeting notes and
// client/staking share tables; a larger table can be supplied via the
// orgMapping config source.
var defaultTable = AliasTable{
	DomainGithub: {
		"vbuterin":    "Ethereum Foundation",
		"gcolvin":     "Ethereum Foundation",
		"axic":        "Ethereum Foundation",
		"chriseth":    "Ethereum Foundation",
		"karalabe":    "Ethereum Foundation",
		"fjl":         "Ethereum Foundation",
		"holiman":     "Ethereum Foundation",
		"timbeiko":    "Ethereum Foundation",
		"frozeman":    "LUKSO",
		"danfinlay":   "Consensys",
		"rekmarks":    "Consensys",
		"fulldecent":  "Independent",
		"lightclient": "Ethereum Foundation",
		"samwilsn":    "Ethereum Foundation",
		"pandapip1":   "Independent",
		"protolambda": "OP Labs",
		"djrtwo":      "Ethereum Foundation",
		"mkalinin":    "TxRx",
		"arachnid":    "ENS",
	},
	DomainAttendee: {
		"vitalik buterin":     "Ethereum Foundation",
		"vitalik":             "Ethereum Foundation",
		"tim beiko":           "Ethereum Foundation",
		"danny ryan":          "Ethereum Foundation",
		"hudson jameson":      "Ethereum Foundation",
		"martin becze":        "Ethereum Foundation",
		"ethereum":            "Ethereum Foundation",
		"ef":                  "Ethereum Foundation",
		"peter szilagyi":      "Ethereum Foundation",
		"martin holst swende": "Ethereum Foundation",
		"andrew ashikhmin":    "Erigon",
		"alexey akhunov":      "Erigon",
		"lukasz rozmej":       "Nethermind",
		"tomasz stanczak":     "Nethermind",
		"marek moraczynski":   "Nethermind",
		"danno ferrin":        "Consensys",
		"justin florentine":   "Consensys",
		"gary schulte":        "Consensys",
		"mikhail kalinin":     "TxRx",
		"pooja ranjan":        "Ethereum Cat Herders",
	},
	DomainClient: {
		"geth":             "Ethereum Foundation",
		"go-ethereum":      "Ethereum Foundation",
		"besu":             "Consensys",
		"hyperledger besu": "Consensys",
		"nethermind":       "Nethermind",
		"erigon":           "Erigon",
		"reth":             "Paradigm",
		"openethereum":     "OpenEthereum",
		"prysm":            "Offchain Labs",
		"lighthouse":       "Sigma Prime",
		"teku":             "Consensys",
		"nimbus":           "Status",
		"lodestar":         "ChainSafe",
	},
	DomainPool: {
		"lido":           "Lido",
		"coinbase":       "Coinbase",
		"kraken":         "Kraken",
		"binance":        "Binance",
		"rocket pool":    "Rocket Pool",
		"rocketpool":     "Rocket Pool",
		"ether.fi":       "Ether.fi",
		"figment":        "Figment",
		"staked.us":      "Staked.us",
		"stakefish":      "Stakefish",
		"bitcoin suisse": "Bitcoin Suisse",
	},
}
