package networks

import (
	"os"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

type GenericNetworkConfig struct {
	Name                            string            `json:"name"`
	AlternativeNames                []string          `json:"alternative_names"`
	ChainID                         uint64            `json:"chain_id"`
	NativeTokenSymbol               string            `json:"native_token_symbol"`
	NativeTokenDecimal              uint64            `json:"native_token_decimal"`
	NodeVariableName                string            `json:"node_variable_name"`
	DefaultNodes                    map[string]string `json:"default_nodes"`
	BlockExplorerAPIKeyVariableName string            `json:"block_explorer_api_key_variable_name"`
	BlockExplorerAPIURL             string            `json:"block_explorer_api_url"`
	IndexerVariableName             string            `json:"indexer_variable_name"`
	DefaultIndexerURL               string            `json:"default_indexer_url"`
	TraceServiceURL                 string            `json:"trace_service_url"`
	ENSRegistryAddress              string            `json:"ens_registry_address"`
}

// GenericNetwork is a table-driven Network implementation. All supported
// chains are instances of it; env var overrides for the node and indexer
// endpoints are read lazily so tests can set them per call.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	if custom := strings.TrimSpace(os.Getenv(gn.config.NodeVariableName)); custom != "" {
		return map[string]string{"custom-node": custom}
	}
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetBlockExplorerAPIKeyVariableName() string {
	return gn.config.BlockExplorerAPIKeyVariableName
}

func (gn *GenericNetwork) GetBlockExplorerAPIURL() string {
	return gn.config.BlockExplorerAPIURL
}

func (gn *GenericNetwork) GetIndexerVariableName() string {
	return gn.config.IndexerVariableName
}

func (gn *GenericNetwork) GetDefaultIndexerURL() string {
	if custom := strings.TrimSpace(os.Getenv(gn.config.IndexerVariableName)); custom != "" {
		return custom
	}
	return gn.config.DefaultIndexerURL
}

func (gn *GenericNetwork) GetTraceServiceURL() string {
	return gn.config.TraceServiceURL
}

func (gn *GenericNetwork) GetENSRegistry() (ethcommon.Address, bool) {
	if gn.config.ENSRegistryAddress == "" {
		return ethcommon.Address{}, false
	}
	return ethcommon.HexToAddress(gn.config.ENSRegistryAddress), true
}
