package explorers_test

import (
	"context"
	"errors"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tjjd4/evm-mcp-server/explorers"
	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/resolver"
)

type noNameService struct{}

func (noNameService) ResolveName(ctx context.Context, name string, network networks.Network) (ethcommon.Address, bool, error) {
	return ethcommon.Address{}, false, nil
}

func TestMetadataProviderRejectsBadIdentifiersBeforeFetching(t *testing.T) {
	provider := explorers.NewMetadataProvider(resolver.NewResolver(noNameService{}), "", nil)
	mainnet, err := networks.GetNetwork("mainnet")
	if err != nil {
		t.Fatalf("mainnet lookup: %s", err)
	}

	_, _, err = provider.GetABI(context.Background(), "notanaddress", mainnet)
	if !errors.Is(err, resolver.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}

	_, _, err = provider.GetSource(context.Background(), "unknown.eth", mainnet)
	if !errors.Is(err, resolver.ErrNameNotFound) {
		t.Fatalf("expected ErrNameNotFound, got %v", err)
	}
}
