package networks

var ArbitrumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "arbitrum",
	AlternativeNames:   []string{"arb"},
	ChainID:            42161,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "ARBITRUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"arbitrum-one": "https://arb1.arbitrum.io/rpc",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "ARBITRUM_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://arb-mainnet.g.alchemy.com/v2",
})
