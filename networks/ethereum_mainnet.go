package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "mainnet",
	AlternativeNames:   []string{"ethereum", "eth"},
	ChainID:            1,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-ankr":       "https://rpc.ankr.com/eth",
		"mainnet-cloudflare": "https://cloudflare-eth.com",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "ETHEREUM_MAINNET_INDEXER",
	DefaultIndexerURL:               "https://eth-mainnet.g.alchemy.com/v2",
	ENSRegistryAddress:              "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e",
})
