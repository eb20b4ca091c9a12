package decoder_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/decoder"
	"github.com/tjjd4/evm-mcp-server/networks"
)

const someTxHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

// fakeChainReader scripts what the node returns for one transaction and the
// code at its target.
type fakeChainReader struct {
	tx         *types.Transaction
	code       []byte
	codeCalled bool
}

func (f *fakeChainReader) TransactionByHash(ctx context.Context, hash ethcommon.Hash) (*types.Transaction, bool, error) {
	return f.tx, false, nil
}

func (f *fakeChainReader) GetCode(ctx context.Context, address ethcommon.Address) ([]byte, error) {
	f.codeCalled = true
	return f.code, nil
}

type fakeReaderSource struct {
	reader *fakeChainReader
}

func (f fakeReaderSource) ReaderFor(network networks.Network) (decoder.ChainReader, error) {
	return f.reader, nil
}

func legacyTx(to *ethcommon.Address, data []byte) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    1,
		To:       to,
		Value:    big.NewInt(1),
		Gas:      21000,
		GasPrice: big.NewInt(1),
		Data:     data,
	})
}

func txDecoderWith(reader *fakeChainReader) *decoder.TransactionDecoder {
	// the metadata provider is only reached for non-empty calldata, which
	// these cases never have
	return decoder.NewTransactionDecoder(decoder.NewDecoder(nil), fakeReaderSource{reader: reader}, nil)
}

func TestDecodeForTransactionRejectsMalformedHash(t *testing.T) {
	reader := &fakeChainReader{}
	td := txDecoderWith(reader)
	_, err := td.DecodeForTransaction(context.Background(), "0x1234", mainnetNetwork(t))
	if !errors.Is(err, common.ErrInvalidHashFormat) {
		t.Fatalf("expected ErrInvalidHashFormat, got %v", err)
	}
}

func TestDecodeForTransactionDeploy(t *testing.T) {
	reader := &fakeChainReader{tx: legacyTx(nil, []byte{0x60, 0x80})}
	td := txDecoderWith(reader)

	call, err := td.DecodeForTransaction(context.Background(), someTxHash, mainnetNetwork(t))
	if err != nil {
		t.Fatalf("DecodeForTransaction: %s", err)
	}
	if call.Kind != decoder.KindDeploy {
		t.Fatalf("nil target is a deployment, got %q", call.Kind)
	}
	if call.To != "" {
		t.Fatalf("deployments have no target, got %q", call.To)
	}
}

func TestDecodeForTransactionEmptyCallDataToEOA(t *testing.T) {
	to := ethcommon.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	reader := &fakeChainReader{tx: legacyTx(&to, nil), code: nil}
	td := txDecoderWith(reader)

	call, err := td.DecodeForTransaction(context.Background(), someTxHash, mainnetNetwork(t))
	if err != nil {
		t.Fatalf("DecodeForTransaction: %s", err)
	}
	if call.Kind != decoder.KindTransfer {
		t.Fatalf("empty calldata to a codeless target is a plain transfer, got %q", call.Kind)
	}
	if !reader.codeCalled {
		t.Fatalf("classification must check the target's bytecode")
	}
}

func TestDecodeForTransactionEmptyCallDataToContract(t *testing.T) {
	to := ethcommon.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	reader := &fakeChainReader{tx: legacyTx(&to, nil), code: []byte{0x60, 0x80, 0x60, 0x40}}
	td := txDecoderWith(reader)

	call, err := td.DecodeForTransaction(context.Background(), someTxHash, mainnetNetwork(t))
	if err != nil {
		t.Fatalf("DecodeForTransaction: %s", err)
	}
	if call.Kind != decoder.KindFallback {
		t.Fatalf("empty calldata to a contract invokes its fallback, got %q", call.Kind)
	}
	if call.To != to.Hex() {
		t.Fatalf("target: got %q", call.To)
	}
}

func mainnetNetwork(t *testing.T) networks.Network {
	t.Helper()
	n, err := networks.GetNetwork("mainnet")
	if err != nil {
		t.Fatalf("mainnet lookup: %s", err)
	}
	return n
}
