package resolver

import (
	"context"
	"fmt"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/net/idna"

	"github.com/tjjd4/evm-mcp-server/networks"
)

const ensRegistryABIJSON = `[
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const ensResolverABIJSON = `[
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

var (
	ensRegistryABI = mustParseABI(ensRegistryABIJSON)
	ensResolverABI = mustParseABI(ensResolverABIJSON)
)

func mustParseABI(jsonStr string) ethabi.ABI {
	parsed, err := ethabi.JSON(strings.NewReader(jsonStr))
	if err != nil {
		panic(err)
	}
	return parsed
}

// ens names are normalized with the UTS-46 lookup mapping; underscores and
// emoji labels are common on ens so strict hostname rules are off.
var ensNameProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

// NormalizeName canonicalizes a dotted name, rejecting malformed ones.
func NormalizeName(name string) (string, error) {
	normalized, err := ensNameProfile.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("name %q is malformed: %v: %w", name, err, ErrInvalidIdentifier)
	}
	if normalized == "" {
		return "", fmt.Errorf("empty name: %w", ErrInvalidIdentifier)
	}
	for _, label := range strings.Split(normalized, ".") {
		if label == "" {
			return "", fmt.Errorf("name %q has an empty label: %w", name, ErrInvalidIdentifier)
		}
	}
	return normalized, nil
}

// Namehash computes the EIP-137 node hash of an already-dotted name,
// normalizing it first.
func Namehash(name string) (ethcommon.Hash, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return ethcommon.Hash{}, err
	}

	node := make([]byte, 32)
	labels := strings.Split(normalized, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256(node, labelHash)
	}
	return ethcommon.BytesToHash(node), nil
}

// ContractCaller is the read-only chain access the ENS lookup needs.
type ContractCaller interface {
	CallContract(ctx context.Context, to ethcommon.Address, data []byte) ([]byte, error)
}

// CallerSource yields a chain caller for a network. *reader.ClientProvider
// is adapted to it in the wiring layer.
type CallerSource interface {
	CallerFor(network networks.Network) (ContractCaller, error)
}

// ENSService resolves dotted names against the on-chain ENS registry of the
// network, using two eth_calls: registry.resolver(node), then addr(node) on
// the returned resolver contract.
type ENSService struct {
	callers CallerSource
}

func NewENSService(callers CallerSource) *ENSService {
	return &ENSService{callers: callers}
}

func (e *ENSService) ResolveName(ctx context.Context, name string, network networks.Network) (ethcommon.Address, bool, error) {
	registry, hasENS := network.GetENSRegistry()
	if !hasENS {
		return ethcommon.Address{}, false, fmt.Errorf(
			"network %s: %w", network.GetName(), ErrNameServiceUnavailable)
	}

	node, err := Namehash(name)
	if err != nil {
		return ethcommon.Address{}, false, err
	}

	caller, err := e.callers.CallerFor(network)
	if err != nil {
		return ethcommon.Address{}, false, err
	}

	resolverAddr, err := e.callAddressMethod(ctx, caller, registry, ensRegistryABI, "resolver", node)
	if err != nil {
		return ethcommon.Address{}, false, fmt.Errorf("querying ens registry for %q: %w", name, err)
	}
	if resolverAddr == (ethcommon.Address{}) {
		return ethcommon.Address{}, false, nil
	}

	addr, err := e.callAddressMethod(ctx, caller, resolverAddr, ensResolverABI, "addr", node)
	if err != nil {
		return ethcommon.Address{}, false, fmt.Errorf("querying ens resolver for %q: %w", name, err)
	}
	if addr == (ethcommon.Address{}) {
		return ethcommon.Address{}, false, nil
	}
	return addr, true, nil
}

func (e *ENSService) callAddressMethod(
	ctx context.Context,
	caller ContractCaller,
	contract ethcommon.Address,
	contractABI ethabi.ABI,
	method string,
	node ethcommon.Hash,
) (ethcommon.Address, error) {
	data, err := contractABI.Pack(method, [32]byte(node))
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("packing %s call: %w", method, err)
	}
	out, err := caller.CallContract(ctx, contract, data)
	if err != nil {
		return ethcommon.Address{}, err
	}
	results, err := contractABI.Unpack(method, out)
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("unpacking %s result: %w", method, err)
	}
	if len(results) != 1 {
		return ethcommon.Address{}, fmt.Errorf("unexpected %s result arity %d", method, len(results))
	}
	addr, ok := results[0].(ethcommon.Address)
	if !ok {
		return ethcommon.Address{}, fmt.Errorf("unexpected %s result type %T", method, results[0])
	}
	return addr, nil
}
