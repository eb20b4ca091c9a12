package common

// ValueKind tags a decoded ABI value so consumers can switch on it
// exhaustively instead of sniffing an untyped interface.
type ValueKind string

const (
	AddressKind    ValueKind = "address"
	UintKind       ValueKind = "uint"
	IntKind        ValueKind = "int"
	BoolKind       ValueKind = "bool"
	StringKind     ValueKind = "string"
	BytesKind      ValueKind = "bytes"
	FixedBytesKind ValueKind = "fixed_bytes"
	HashKind       ValueKind = "hash"
	TupleKind      ValueKind = "tuple"
	ArrayKind      ValueKind = "array"
)

// Value is one decoded calldata argument. Scalar kinds carry their canonical
// string rendering in Value; TupleKind fills Tuple and ArrayKind fills Array,
// recursively.
type Value struct {
	Kind  ValueKind    `json:"kind"`
	Value string       `json:"value,omitempty"`
	Tuple []TupleField `json:"tuple,omitempty"`
	Array []Value      `json:"array,omitempty"`
}

// TupleField is a named member of a tuple value. Name may be empty when the
// ABI does not carry component names.
type TupleField struct {
	Name  string `json:"name,omitempty"`
	Value Value  `json:"value"`
}

func AddressValue(hex string) Value {
	return Value{Kind: AddressKind, Value: hex}
}

func UintValue(dec string) Value {
	return Value{Kind: UintKind, Value: dec}
}

func BytesValue(hex string) Value {
	return Value{Kind: BytesKind, Value: hex}
}

func StringValue(s string) Value {
	return Value{Kind: StringKind, Value: s}
}

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: BoolKind, Value: "true"}
	}
	return Value{Kind: BoolKind, Value: "false"}
}
