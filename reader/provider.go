package reader

import (
	"fmt"
	"sync"
	"time"

	"github.com/tjjd4/evm-mcp-server/networks"
)

// ClientProvider is the process wide get-or-create cache of node clients,
// keyed by network name. It is the only shared mutable state the core touches
// and is safe for concurrent use.
type ClientProvider struct {
	timeout time.Duration

	mu      sync.Mutex
	clients map[string]*NodeClient
}

func NewClientProvider(timeout time.Duration) *ClientProvider {
	return &ClientProvider{
		timeout: timeout,
		clients: map[string]*NodeClient{},
	}
}

// GetOrCreate returns the cached client for the network, creating one from
// the network's first default node if none exists yet.
func (cp *ClientProvider) GetOrCreate(network networks.Network) (*NodeClient, error) {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if client, found := cp.clients[network.GetName()]; found {
		return client, nil
	}

	nodes := network.GetDefaultNodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no node configured for network %s (set %s)",
			network.GetName(), network.GetNodeVariableName())
	}
	for name, url := range nodes {
		client := NewNodeClient(name, url, cp.timeout)
		cp.clients[network.GetName()] = client
		return client, nil
	}
	// unreachable, the loop always returns
	return nil, nil
}
