package networks

var BSCMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "bsc",
	AlternativeNames:   []string{"binance", "bnb"},
	ChainID:            56,
	NativeTokenSymbol:  "BNB",
	NativeTokenDecimal: 18,
	NodeVariableName:   "BSC_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"bsc-binance": "https://bsc-dataseed.binance.org",
		"bsc-defibit": "https://bsc-dataseed1.defibit.io",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "BSC_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://bnb-mainnet.g.alchemy.com/v2",
})
