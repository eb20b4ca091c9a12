package trace

import (
	"github.com/tjjd4/evm-mcp-server/common"
)

// DecodedInput is the trace service's view of a piece of calldata: the
// function name and the decoded arguments.
type DecodedInput struct {
	Name string         `json:"name"`
	Args []common.Value `json:"args"`
}

type wireDecodedInput struct {
	Name   string      `json:"name"`
	Params []wireParam `json:"params"`
}

type wireParam struct {
	Type       string      `json:"type"`
	Value      string      `json:"value"`
	Components []wireParam `json:"components"`
	Name       string      `json:"name"`
}

func (w wireDecodedInput) toDecodedInput() *DecodedInput {
	args := make([]common.Value, 0, len(w.Params))
	for _, param := range w.Params {
		args = append(args, param.toValue())
	}
	return &DecodedInput{Name: w.Name, Args: args}
}

func (p wireParam) toValue() common.Value {
	if len(p.Components) > 0 {
		fields := make([]common.TupleField, 0, len(p.Components))
		for _, comp := range p.Components {
			fields = append(fields, common.TupleField{Name: comp.Name, Value: comp.toValue()})
		}
		return common.Value{Kind: common.TupleKind, Tuple: fields}
	}
	return common.Value{Kind: kindForType(p.Type), Value: p.Value}
}

func kindForType(solType string) common.ValueKind {
	switch {
	case solType == "address":
		return common.AddressKind
	case solType == "bool":
		return common.BoolKind
	case solType == "string":
		return common.StringKind
	case solType == "bytes":
		return common.BytesKind
	case len(solType) > 5 && solType[:5] == "bytes":
		return common.FixedBytesKind
	case len(solType) >= 4 && solType[:4] == "uint":
		return common.UintKind
	case len(solType) >= 3 && solType[:3] == "int":
		return common.IntKind
	default:
		return common.StringKind
	}
}
