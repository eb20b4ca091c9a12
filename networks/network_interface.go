package networks

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Network describes every endpoint the core needs to talk about one chain:
// a JSON-RPC node, a block-explorer API, an asset-indexer endpoint and an
// optional trace service. Implementations are immutable after construction.
type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	GetBlockExplorerAPIKeyVariableName() string
	GetBlockExplorerAPIURL() string

	// GetIndexerVariableName names the env var holding the asset-indexer
	// endpoint override for this chain.
	GetIndexerVariableName() string
	GetDefaultIndexerURL() string

	// GetTraceServiceURL returns "" when no trace service is available for
	// this chain.
	GetTraceServiceURL() string

	// GetENSRegistry returns the name-service registry contract and true, or
	// false when the chain has no name service.
	GetENSRegistry() (ethcommon.Address, bool)
}
