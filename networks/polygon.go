package networks

var PolygonMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "polygon",
	AlternativeNames:   []string{"matic"},
	ChainID:            137,
	NativeTokenSymbol:  "POL",
	NativeTokenDecimal: 18,
	NodeVariableName:   "POLYGON_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"polygon-rpc": "https://polygon-rpc.com",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "POLYGON_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://polygon-mainnet.g.alchemy.com/v2",
})
