package networks

var Sepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "sepolia",
	AlternativeNames:   []string{"ethereum-sepolia"},
	ChainID:            11155111,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	NodeVariableName:   "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-ankr": "https://rpc.ankr.com/eth_sepolia",
	},
	BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
	BlockExplorerAPIURL:             "https://api.etherscan.io/v2",
	IndexerVariableName:             "ETHEREUM_SEPOLIA_INDEXER",
	DefaultIndexerURL:               "https://eth-sepolia.g.alchemy.com/v2",
	ENSRegistryAddress:              "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e",
})
