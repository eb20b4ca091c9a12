package networks

var BaseMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "base",
	AlternativeNames:   []string{},
	ChainID:            8453,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "BASE_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"base-mainnet": "https://mainnet.base.org",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "BASE_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://base-mainnet.g.alchemy.com/v2",
})
