package history

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Direction says which side of the subject address a query covers.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ErrIndexService means the transfer index backend failed for every queried
// direction and no records could be produced at all.
var ErrIndexService = errors.New("transfer index service unavailable")

// PartialHistoryError reports that one direction of a history query failed
// while the other produced records. The returned records are usable, they
// are just one-sided.
type PartialHistoryError struct {
	Direction Direction
	Err       error
}

func (e *PartialHistoryError) Error() string {
	return fmt.Sprintf("%s transfers missing: %s", e.Direction, e.Err)
}

func (e *PartialHistoryError) Unwrap() error {
	return e.Err
}

// TransferRecord is one asset movement. Asset is the token contract address,
// or empty for the chain's native asset. Value is the raw on-chain amount,
// not decimal adjusted. Timestamp is nil when the index had no block
// metadata for the transfer.
type TransferRecord struct {
	UniqueID  string     `json:"unique_id"`
	TxHash    string     `json:"tx_hash"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Asset     string     `json:"asset,omitempty"`
	Symbol    string     `json:"symbol,omitempty"`
	Value     *big.Int   `json:"value"`
	Category  string     `json:"category"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// identityKey is the dedup key. Two records agreeing on all of these are the
// same transfer even when both directional queries returned it.
func (r TransferRecord) identityKey() string {
	value := ""
	if r.Value != nil {
		value = r.Value.String()
	}
	return strings.Join([]string{
		strings.ToLower(r.TxHash),
		r.UniqueID,
		strings.ToLower(r.Asset),
		strings.ToLower(r.From),
		strings.ToLower(r.To),
		value,
	}, "|")
}

// Query selects transfers touching Subject. Counterpart narrows to
// transfers between the two addresses. Categories filters by transfer
// category, empty means all supported categories.
type Query struct {
	Subject     string
	Counterpart string
	Categories  []string
	MaxCount    int
}
