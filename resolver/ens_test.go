package resolver_test

import (
	"context"
	"errors"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/resolver"
)

func TestNamehashVectors(t *testing.T) {
	// reference vectors from EIP-137
	vectors := map[string]string{
		"eth":     "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae",
		"foo.eth": "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f",
	}
	for name, want := range vectors {
		got, err := resolver.Namehash(name)
		if err != nil {
			t.Fatalf("namehash(%q): %s", name, err)
		}
		if got != ethcommon.HexToHash(want) {
			t.Errorf("namehash(%q): got %s want %s", name, got.Hex(), want)
		}
	}
}

func TestNamehashNormalizesCase(t *testing.T) {
	lower, err := resolver.Namehash("vitalik.eth")
	if err != nil {
		t.Fatalf("namehash: %s", err)
	}
	upper, err := resolver.Namehash("ViTaLiK.eth")
	if err != nil {
		t.Fatalf("namehash: %s", err)
	}
	if lower != upper {
		t.Fatalf("case variants must hash identically: %s vs %s", lower.Hex(), upper.Hex())
	}
}

func TestNormalizeNameRejectsEmptyLabels(t *testing.T) {
	for _, name := range []string{"", ".", "foo..eth", ".eth", "eth."} {
		if _, err := resolver.NormalizeName(name); !errors.Is(err, resolver.ErrInvalidIdentifier) {
			t.Errorf("NormalizeName(%q): expected ErrInvalidIdentifier, got %v", name, err)
		}
	}
}

// fakeCaller scripts the two eth_calls of an ens lookup. The first call hits
// the registry, the second the resolver.
type fakeCaller struct {
	t       *testing.T
	answers [][]byte
	calls   int
	targets []ethcommon.Address
}

func (f *fakeCaller) CallContract(ctx context.Context, to ethcommon.Address, data []byte) ([]byte, error) {
	if f.calls >= len(f.answers) {
		f.t.Fatalf("unexpected call #%d to %s", f.calls+1, to.Hex())
	}
	f.targets = append(f.targets, to)
	answer := f.answers[f.calls]
	f.calls++
	return answer, nil
}

type fakeCallerSource struct {
	caller *fakeCaller
}

func (f fakeCallerSource) CallerFor(network networks.Network) (resolver.ContractCaller, error) {
	return f.caller, nil
}

func addressWord(addr ethcommon.Address) []byte {
	return ethcommon.LeftPadBytes(addr.Bytes(), 32)
}

func TestENSServiceResolvesThroughRegistryAndResolver(t *testing.T) {
	resolverContract := ethcommon.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	owner := ethcommon.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	caller := &fakeCaller{t: t, answers: [][]byte{
		addressWord(resolverContract),
		addressWord(owner),
	}}
	svc := resolver.NewENSService(fakeCallerSource{caller: caller})

	addr, found, err := svc.ResolveName(context.Background(), "vitalik.eth", mainnet(t))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if !found {
		t.Fatalf("expected the name to resolve")
	}
	if addr != owner {
		t.Fatalf("got %s want %s", addr.Hex(), owner.Hex())
	}
	if caller.calls != 2 {
		t.Fatalf("expected 2 eth_calls, got %d", caller.calls)
	}
	registry, _ := mainnet(t).GetENSRegistry()
	if caller.targets[0] != registry {
		t.Fatalf("first call should hit the registry, hit %s", caller.targets[0].Hex())
	}
	if caller.targets[1] != resolverContract {
		t.Fatalf("second call should hit the resolver, hit %s", caller.targets[1].Hex())
	}
}

func TestENSServiceNoResolverMeansNotFound(t *testing.T) {
	caller := &fakeCaller{t: t, answers: [][]byte{
		addressWord(ethcommon.Address{}),
	}}
	svc := resolver.NewENSService(fakeCallerSource{caller: caller})

	_, found, err := svc.ResolveName(context.Background(), "unregistered.eth", mainnet(t))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if found {
		t.Fatalf("zero resolver address means the name is unregistered")
	}
	if caller.calls != 1 {
		t.Fatalf("no resolver means no second call, got %d calls", caller.calls)
	}
}

func TestENSServiceZeroAddressMeansNotFound(t *testing.T) {
	resolverContract := ethcommon.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	caller := &fakeCaller{t: t, answers: [][]byte{
		addressWord(resolverContract),
		addressWord(ethcommon.Address{}),
	}}
	svc := resolver.NewENSService(fakeCallerSource{caller: caller})

	_, found, err := svc.ResolveName(context.Background(), "expired.eth", mainnet(t))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if found {
		t.Fatalf("a zero addr record means not found, not an error")
	}
}

func TestENSServiceUnavailableOnNetworksWithoutRegistry(t *testing.T) {
	bsc, err := networks.GetNetwork("bsc")
	if err != nil {
		t.Fatalf("bsc lookup: %s", err)
	}
	svc := resolver.NewENSService(fakeCallerSource{caller: &fakeCaller{t: t}})
	_, _, err = svc.ResolveName(context.Background(), "vitalik.eth", bsc)
	if !errors.Is(err, resolver.ErrNameServiceUnavailable) {
		t.Fatalf("expected ErrNameServiceUnavailable, got %v", err)
	}
}
