package decoder

import (
	"context"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/explorers"
	"github.com/tjjd4/evm-mcp-server/networks"
)

// CallKind classifies what a transaction's calldata represents.
type CallKind string

const (
	KindCall     CallKind = "call"
	KindDeploy   CallKind = "deploy"
	KindTransfer CallKind = "transfer"
	// KindFallback is a transaction with empty calldata whose target has
	// deployed bytecode, it invokes the contract's receive/fallback function.
	KindFallback CallKind = "fallback"
)

// TransactionCall is the decoded view of an on-chain transaction. Decoded is
// nil for contract deployments, plain value transfers and fallback
// invocations.
type TransactionCall struct {
	TxHash   string       `json:"tx_hash"`
	To       string       `json:"to,omitempty"`
	Kind     CallKind     `json:"kind"`
	CallData string       `json:"calldata,omitempty"`
	Decoded  *DecodedCall `json:"decoded,omitempty"`
}

// ChainReader is the node access DecodeForTransaction needs.
type ChainReader interface {
	TransactionByHash(ctx context.Context, hash ethcommon.Hash) (*types.Transaction, bool, error)
	GetCode(ctx context.Context, address ethcommon.Address) ([]byte, error)
}

// ChainReaderSource yields a chain reader for a network. The node client
// cache is adapted to it in the wiring layer.
type ChainReaderSource interface {
	ReaderFor(network networks.Network) (ChainReader, error)
}

// TransactionDecoder fetches a transaction from a node and decodes its
// calldata against the target contract's verified ABI, with the signature
// database as fallback.
type TransactionDecoder struct {
	decoder  *Decoder
	nodes    ChainReaderSource
	metadata *explorers.MetadataProvider
}

func NewTransactionDecoder(decoder *Decoder, nodes ChainReaderSource, metadata *explorers.MetadataProvider) *TransactionDecoder {
	return &TransactionDecoder{
		decoder:  decoder,
		nodes:    nodes,
		metadata: metadata,
	}
}

// DecodeForTransaction looks up txHash on network and decodes its calldata.
// Deployments and empty-calldata transactions short-circuit without
// decoding; the latter are split into plain transfers and fallback
// invocations by checking the target's bytecode.
func (td *TransactionDecoder) DecodeForTransaction(ctx context.Context, txHash string, network networks.Network) (*TransactionCall, error) {
	if !common.IsTxHash(txHash) {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidHashFormat, txHash)
	}
	normalized := common.NormalizeTxHash(txHash)

	node, err := td.nodes.ReaderFor(network)
	if err != nil {
		return nil, err
	}
	tx, _, err := node.TransactionByHash(ctx, ethcommon.HexToHash(normalized))
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch transaction %s: %w", normalized, err)
	}

	if tx.To() == nil {
		return &TransactionCall{
			TxHash:   normalized,
			Kind:     KindDeploy,
			CallData: hexutil.Encode(tx.Data()),
		}, nil
	}
	to := tx.To().Hex()
	if len(tx.Data()) == 0 {
		code, err := node.GetCode(ctx, *tx.To())
		if err != nil {
			return nil, fmt.Errorf("couldn't classify transaction %s: %w", normalized, err)
		}
		kind := KindTransfer
		if len(code) > 0 {
			kind = KindFallback
		}
		return &TransactionCall{
			TxHash: normalized,
			To:     to,
			Kind:   kind,
		}, nil
	}

	// the absent case is fine, Decode falls through to the signature
	// database when contractABI is nil
	contractABI, _, err := td.metadata.GetABI(ctx, to, network)
	if err != nil {
		return nil, err
	}

	calldata := hexutil.Encode(tx.Data())
	decoded, err := td.decoder.Decode(ctx, calldata, contractABI)
	if err != nil {
		return nil, err
	}
	return &TransactionCall{
		TxHash:   normalized,
		To:       to,
		Kind:     KindCall,
		CallData: calldata,
		Decoded:  decoded,
	}, nil
}
