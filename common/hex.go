package common

import (
	"regexp"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	addressRegexp  = regexp.MustCompile("^(0x)?[0-9a-fA-F]{40}$")
	txHashRegexp   = regexp.MustCompile("^(0x)?[0-9a-fA-F]{64}$")
	hexDataRegexp  = regexp.MustCompile("^(0x)?([0-9a-fA-F]{2})*$")
	selectorRegexp = regexp.MustCompile("^(0x)?[0-9a-fA-F]{8}")
)

// IsAddress reports whether str is exactly one 20 byte hex address, with or
// without the 0x prefix.
func IsAddress(str string) bool {
	return addressRegexp.MatchString(str)
}

// IsTxHash reports whether str is exactly one 32 byte hex hash.
func IsTxHash(str string) bool {
	return txHashRegexp.MatchString(str)
}

// IsHexData reports whether str is well formed hex of whole bytes. The empty
// payload ("0x") is valid hex data.
func IsHexData(str string) bool {
	return hexDataRegexp.MatchString(str)
}

// HasSelector reports whether hex calldata is long enough to carry a 4 byte
// function selector.
func HasSelector(str string) bool {
	return selectorRegexp.MatchString(str)
}

// NormalizeAddress returns the EIP-55 checksummed form of a hex address.
// The input must already satisfy IsAddress.
func NormalizeAddress(str string) string {
	return ethcommon.HexToAddress(str).Hex()
}

// NormalizeTxHash lowercases a hex hash and ensures the 0x prefix.
func NormalizeTxHash(str string) string {
	if !strings.HasPrefix(str, "0x") {
		str = "0x" + str
	}
	return strings.ToLower(str)
}
