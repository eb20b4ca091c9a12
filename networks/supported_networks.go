package networks

import (
	"fmt"
	"strings"
)

// Insert more Network instances here to support more chains.
var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	BSCMainnet,
	PolygonMainnet,
	ArbitrumMainnet,
	OptimismMainnet,
	BaseMainnet,
	Avalanche,
}

var globalSupportedNetworks = newSupportedNetworks()

var ErrNetworkNotFound = fmt.Errorf("network not found")

type networkRegistry struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networkRegistry) getSupportedNetworkNames() []string {
	res := []string{}
	for _, nw := range supportedNetworks {
		res = append(res, nw.GetName())
	}
	return res
}

func (n *networkRegistry) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networkRegistry) getNetwork(name string) (Network, error) {
	res, found := n.networks[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func newSupportedNetworks() *networkRegistry {
	result := networkRegistry{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		name := strings.ToLower(n.GetName())
		if _, found := result.networks[name]; found {
			panic(fmt.Errorf(
				"network with name or alternative name of '%s' already exists", name,
			))
		}
		result.networks[name] = n
		result.networksByID[n.GetChainID()] = n
		for _, an := range n.GetAlternativeNames() {
			an = strings.ToLower(an)
			if _, found := result.networks[an]; found {
				panic(fmt.Errorf(
					"network with name or alternative name of '%s' already exists", an,
				))
			}
			result.networks[an] = n
		}
	}
	return &result
}

func GetSupportedNetworks() []Network {
	return append([]Network{}, supportedNetworks...)
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}
