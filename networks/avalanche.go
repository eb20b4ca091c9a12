package networks

var Avalanche Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "avalanche",
	AlternativeNames:   []string{"avax"},
	ChainID:            43114,
	NativeTokenSymbol:  "AVAX",
	NativeTokenDecimal: 18,
	NodeVariableName:   "AVALANCHE_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"avalanche-c": "https://api.avax.network/ext/bc/C/rpc",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "AVALANCHE_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://avax-mainnet.g.alchemy.com/v2",
})
