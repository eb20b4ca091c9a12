package decoder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/trace"
)

// DecodeSource says which strategy produced a decoded call. Results from the
// contract's own verified ABI are authoritative; results from the signature
// database fallback are best-effort guesses and stay tagged as such.
type DecodeSource string

const (
	SourceABI       DecodeSource = "abi"
	SourceHeuristic DecodeSource = "heuristic"
)

// ErrDecodeExhausted means every available strategy was tried and none could
// decode the calldata. There is nothing left to retry.
var ErrDecodeExhausted = errors.New("calldata could not be decoded by any available strategy")

// Argument is one decoded function argument.
type Argument struct {
	Name  string       `json:"name,omitempty"`
	Type  string       `json:"type"`
	Value common.Value `json:"value"`
}

// DecodedCall is the decoded form of a piece of calldata.
type DecodedCall struct {
	FunctionName string       `json:"function_name"`
	Args         []Argument   `json:"args"`
	Source       DecodeSource `json:"source"`
}

// SelectorDecoder is the fallback tier, typically backed by the trace
// service's signature database.
type SelectorDecoder interface {
	DecodeInput(ctx context.Context, data string) (*trace.DecodedInput, error)
}

// Decoder decodes calldata, preferring the contract's verified ABI and
// falling back to a signature database lookup.
type Decoder struct {
	fallback SelectorDecoder
	logger   logrus.FieldLogger
}

// NewDecoder builds a Decoder. fallback may be nil, in which case only the
// ABI tier is available.
func NewDecoder(fallback SelectorDecoder) *Decoder {
	return &Decoder{
		fallback: fallback,
		logger:   logrus.StandardLogger().WithField("module", "decoder"),
	}
}

// Decode decodes calldata against contractABI when possible, otherwise via
// the fallback tier. contractABI may be nil. Fails with ErrDecodeExhausted
// once both tiers have been tried.
func (d *Decoder) Decode(ctx context.Context, data string, contractABI *ethabi.ABI) (*DecodedCall, error) {
	if !common.IsHexData(data) || !common.HasSelector(data) {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidCallDataFormat, data)
	}
	normalized := data
	if !strings.HasPrefix(normalized, "0x") {
		normalized = "0x" + normalized
	}
	payload, err := hexutil.Decode(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidCallDataFormat, data)
	}

	var abiErr error
	if contractABI != nil {
		call, err := decodeWithABI(payload, contractABI)
		if err == nil {
			return call, nil
		}
		abiErr = err
		d.logger.WithError(err).Debug("abi decode missed, trying signature database")
	}

	if d.fallback == nil {
		return nil, errors.Join(ErrDecodeExhausted, abiErr)
	}
	decoded, fallbackErr := d.fallback.DecodeInput(ctx, normalized)
	if fallbackErr != nil {
		return nil, errors.Join(ErrDecodeExhausted, abiErr, fallbackErr)
	}
	args := make([]Argument, 0, len(decoded.Args))
	for _, arg := range decoded.Args {
		args = append(args, Argument{Type: string(arg.Kind), Value: arg})
	}
	return &DecodedCall{
		FunctionName: decoded.Name,
		Args:         args,
		Source:       SourceHeuristic,
	}, nil
}

func decodeWithABI(payload []byte, contractABI *ethabi.ABI) (*DecodedCall, error) {
	method, err := contractABI.MethodById(payload[:4])
	if err != nil {
		return nil, fmt.Errorf("selector not in abi: %w", err)
	}
	params, err := method.Inputs.UnpackValues(payload[4:])
	if err != nil {
		return nil, fmt.Errorf("couldn't unpack %s params: %w", method.Name, err)
	}
	args := make([]Argument, 0, len(params))
	for i, param := range params {
		input := method.Inputs[i]
		args = append(args, Argument{
			Name:  input.Name,
			Type:  input.Type.String(),
			Value: valueFor(input.Type, param),
		})
	}
	return &DecodedCall{
		FunctionName: method.Name,
		Args:         args,
		Source:       SourceABI,
	}, nil
}
