package networks

var OptimismMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "optimism",
	AlternativeNames:   []string{"op"},
	ChainID:            10,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "OPTIMISM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"optimism-mainnet": "https://mainnet.optimism.io",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "OPTIMISM_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://opt-mainnet.g.alchemy.com/v2",
})
