package explorers

import (
	"context"
	"net/http"
	"os"
	"sync"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/sirupsen/logrus"

	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/resolver"
)

// MetadataProvider serves contract ABIs and verified source for any
// supported network. Identifiers go through the resolver first, so dotted
// names work everywhere an address does.
type MetadataProvider struct {
	resolver   *resolver.Resolver
	apiKey     string
	httpClient *http.Client
	logger     logrus.FieldLogger

	mu      sync.Mutex
	clients map[uint64]*EtherscanClient
}

func NewMetadataProvider(res *resolver.Resolver, apiKey string, httpClient *http.Client) *MetadataProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MetadataProvider{
		resolver:   res,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logrus.StandardLogger().WithField("module", "explorers"),
		clients:    map[uint64]*EtherscanClient{},
	}
}

func (mp *MetadataProvider) clientFor(network networks.Network) *EtherscanClient {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if client, found := mp.clients[network.GetChainID()]; found {
		return client
	}
	apiKey := os.Getenv(network.GetBlockExplorerAPIKeyVariableName())
	if apiKey == "" {
		apiKey = mp.apiKey
	}
	client := NewEtherscanClient(network.GetBlockExplorerAPIURL(), apiKey, network.GetChainID(), mp.httpClient)
	mp.clients[network.GetChainID()] = client
	return client
}

func (mp *MetadataProvider) resolveTarget(ctx context.Context, identifier string, network networks.Network) (string, error) {
	resolved, err := mp.resolver.Resolve(ctx, identifier, network)
	if err != nil {
		return "", err
	}
	return resolved.Hex(), nil
}

// GetABI returns the verified ABI of the contract behind identifier. The
// bool result is false when the contract has no verified ABI.
func (mp *MetadataProvider) GetABI(ctx context.Context, identifier string, network networks.Network) (*ethabi.ABI, bool, error) {
	address, err := mp.resolveTarget(ctx, identifier, network)
	if err != nil {
		return nil, false, err
	}
	parsed, verified, err := mp.clientFor(network).GetABI(ctx, address)
	if err != nil {
		mp.logger.WithError(err).WithField("address", address).Debug("abi fetch failed")
		return nil, false, err
	}
	return parsed, verified, nil
}

// GetABIString is GetABI without the parse step, for callers that want the
// raw JSON.
func (mp *MetadataProvider) GetABIString(ctx context.Context, identifier string, network networks.Network) (string, bool, error) {
	address, err := mp.resolveTarget(ctx, identifier, network)
	if err != nil {
		return "", false, err
	}
	return mp.clientFor(network).GetABIString(ctx, address)
}

// GetSource returns the flattened verified source of the contract behind
// identifier. The bool result is false when the contract is not verified.
func (mp *MetadataProvider) GetSource(ctx context.Context, identifier string, network networks.Network) (*SourceBundle, bool, error) {
	address, err := mp.resolveTarget(ctx, identifier, network)
	if err != nil {
		return nil, false, err
	}
	bundle, verified, err := mp.clientFor(network).GetSource(ctx, address)
	if err != nil {
		mp.logger.WithError(err).WithField("address", address).Debug("source fetch failed")
		return nil, false, err
	}
	return bundle, verified, nil
}
