package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/networks"
)

var (
	// ErrInvalidIdentifier means the input is neither a hex address nor a
	// dotted name. Detected before any network call.
	ErrInvalidIdentifier = errors.New("invalid address or name identifier")

	// ErrNameNotFound means the name service answered but knows no address
	// for the name. Distinct from a transport failure.
	ErrNameNotFound = errors.New("name not found")

	// ErrNameServiceUnavailable means the network has no name service to ask.
	ErrNameServiceUnavailable = errors.New("network has no name service")
)

// ResolvedAddress is a canonical on-chain address together with the alias it
// was resolved from, if any.
type ResolvedAddress struct {
	Address ethcommon.Address
	Alias   string
}

func (ra ResolvedAddress) Hex() string {
	return ra.Address.Hex()
}

// NameService looks a dotted name up on one network. The bool result is
// false when the lookup completed but found nothing.
type NameService interface {
	ResolveName(ctx context.Context, name string, network networks.Network) (ethcommon.Address, bool, error)
}

// Resolver normalizes a caller supplied identifier, either a raw hex address
// or a dotted name, into a canonical address.
type Resolver struct {
	names NameService
}

func NewResolver(names NameService) *Resolver {
	return &Resolver{names: names}
}

// Resolve returns the canonical address for identifier. Raw hex addresses
// are case-normalized locally without any network call; dotted names go
// through the name service. No retries are performed, a transient resolution
// failure surfaces to the caller.
func (r *Resolver) Resolve(ctx context.Context, identifier string, network networks.Network) (ResolvedAddress, error) {
	identifier = strings.TrimSpace(identifier)

	if common.IsAddress(identifier) {
		return ResolvedAddress{Address: ethcommon.HexToAddress(identifier)}, nil
	}

	if !strings.Contains(identifier, ".") {
		return ResolvedAddress{}, fmt.Errorf("%q: %w", identifier, ErrInvalidIdentifier)
	}

	addr, found, err := r.names.ResolveName(ctx, identifier, network)
	if err != nil {
		return ResolvedAddress{}, err
	}
	if !found {
		return ResolvedAddress{}, fmt.Errorf("%q: %w", identifier, ErrNameNotFound)
	}
	return ResolvedAddress{Address: addr, Alias: identifier}, nil
}
