package decoder

import (
	"fmt"
	"math/big"
	"reflect"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tjjd4/evm-mcp-server/common"
)

// valueFor converts one unpacked abi value into the display representation.
// Slices, arrays and tuples recurse.
func valueFor(t ethabi.Type, v interface{}) common.Value {
	switch t.T {
	case ethabi.SliceTy, ethabi.ArrayTy:
		rv := reflect.ValueOf(v)
		elems := make([]common.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems = append(elems, valueFor(*t.Elem, rv.Index(i).Interface()))
		}
		return common.Value{Kind: common.ArrayKind, Array: elems}
	case ethabi.TupleTy:
		rv := reflect.ValueOf(v)
		fields := make([]common.TupleField, 0, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			fields = append(fields, common.TupleField{
				Name:  t.TupleRawNames[i],
				Value: valueFor(*elem, rv.Field(i).Interface()),
			})
		}
		return common.Value{Kind: common.TupleKind, Tuple: fields}
	case ethabi.AddressTy:
		return common.AddressValue(v.(ethcommon.Address).Hex())
	case ethabi.BoolTy:
		return common.BoolValue(v.(bool))
	case ethabi.StringTy:
		return common.StringValue(v.(string))
	case ethabi.BytesTy:
		return common.BytesValue(hexutil.Encode(v.([]byte)))
	case ethabi.FixedBytesTy, ethabi.FunctionTy:
		return common.Value{Kind: common.FixedBytesKind, Value: hexutil.Encode(reflectBytes(v))}
	case ethabi.HashTy:
		return common.Value{Kind: common.HashKind, Value: v.(ethcommon.Hash).Hex()}
	case ethabi.UintTy:
		return common.Value{Kind: common.UintKind, Value: integerString(v)}
	case ethabi.IntTy:
		return common.Value{Kind: common.IntKind, Value: integerString(v)}
	default:
		return common.StringValue(fmt.Sprintf("%v", v))
	}
}

// reflectBytes copies a fixed size byte array out of an interface without
// knowing its length at compile time.
func reflectBytes(v interface{}) []byte {
	rv := reflect.ValueOf(v)
	buf := make([]byte, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		buf[i] = byte(rv.Index(i).Uint())
	}
	return buf
}

// integerString renders the unpacked integer forms go-ethereum produces,
// *big.Int for widths over 64 bits and native ints below.
func integerString(v interface{}) string {
	if n, ok := v.(*big.Int); ok {
		return n.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", rv.Uint())
	default:
		return fmt.Sprintf("%v", v)
	}
}
