package history_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tjjd4/evm-mcp-server/history"
	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/resolver"
)

const subject = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

// fakeFetcher scripts one answer per direction.
type fakeFetcher struct {
	incoming    []history.TransferRecord
	outgoing    []history.TransferRecord
	incomingErr error
	outgoingErr error

	seenSubject string
}

func (f *fakeFetcher) FetchTransfers(ctx context.Context, network networks.Network, direction history.Direction, query history.Query) ([]history.TransferRecord, error) {
	f.seenSubject = query.Subject
	if direction == history.DirectionIncoming {
		return f.incoming, f.incomingErr
	}
	return f.outgoing, f.outgoingErr
}

type tableNameService struct {
	entries map[string]ethcommon.Address
}

func (s tableNameService) ResolveName(ctx context.Context, name string, network networks.Network) (ethcommon.Address, bool, error) {
	addr, found := s.entries[name]
	return addr, found, nil
}

func mainnet(t *testing.T) networks.Network {
	t.Helper()
	n, err := networks.GetNetwork("mainnet")
	if err != nil {
		t.Fatalf("mainnet lookup: %s", err)
	}
	return n
}

func newAggregator(fetcher history.TransferFetcher) *history.Aggregator {
	return history.NewAggregator(fetcher, resolver.NewResolver(tableNameService{}))
}

func record(txHash, uniqueID string, value int64, ts *time.Time) history.TransferRecord {
	return history.TransferRecord{
		UniqueID:  uniqueID,
		TxHash:    txHash,
		From:      subject,
		To:        "0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97",
		Asset:     "",
		Value:     big.NewInt(value),
		Category:  "external",
		Timestamp: ts,
	}
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %s", value, err)
	}
	return &parsed
}

func TestHistoryMergesAndDedups(t *testing.T) {
	older := ts(t, "2024-03-01T10:00:00Z")
	newer := ts(t, "2024-03-02T10:00:00Z")
	// the self transfer shows up in both directional queries with the same
	// identity, it must appear once in the merged result
	selfTransfer := record("0xaaa1", "0xaaa1:log:0", 5, older)
	fetcher := &fakeFetcher{
		incoming: []history.TransferRecord{selfTransfer, record("0xbbb2", "0xbbb2:log:0", 10, newer)},
		outgoing: []history.TransferRecord{selfTransfer, record("0xccc3", "0xccc3:log:0", 20, older)},
	}

	records, err := newAggregator(fetcher).GetTransferHistory(
		context.Background(), history.Query{Subject: subject}, mainnet(t))
	if err != nil {
		t.Fatalf("GetTransferHistory: %s", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records after dedup, got %d", len(records))
	}
	seen := map[string]bool{}
	for _, r := range records {
		if seen[r.TxHash] {
			t.Fatalf("tx %s appears twice", r.TxHash)
		}
		seen[r.TxHash] = true
	}
}

func TestHistorySameTxDifferentSubIndexIsKept(t *testing.T) {
	when := ts(t, "2024-03-01T10:00:00Z")
	fetcher := &fakeFetcher{
		incoming: []history.TransferRecord{
			record("0xaaa1", "0xaaa1:log:0", 5, when),
			record("0xaaa1", "0xaaa1:log:1", 5, when),
		},
	}
	records, err := newAggregator(fetcher).GetTransferHistory(
		context.Background(), history.Query{Subject: subject}, mainnet(t))
	if err != nil {
		t.Fatalf("GetTransferHistory: %s", err)
	}
	if len(records) != 2 {
		t.Fatalf("distinct sub-indexes of one tx are distinct transfers, got %d records", len(records))
	}
}

func TestHistorySortNewestFirstMissingTimestampsLast(t *testing.T) {
	fetcher := &fakeFetcher{
		incoming: []history.TransferRecord{
			record("0xold1", "0xold1:log:0", 1, ts(t, "2024-01-01T00:00:00Z")),
			record("0xnots", "0xnots:log:0", 2, nil),
		},
		outgoing: []history.TransferRecord{
			record("0xnew1", "0xnew1:log:0", 3, ts(t, "2024-06-01T00:00:00Z")),
		},
	}
	records, err := newAggregator(fetcher).GetTransferHistory(
		context.Background(), history.Query{Subject: subject}, mainnet(t))
	if err != nil {
		t.Fatalf("GetTransferHistory: %s", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].TxHash != "0xnew1" {
		t.Fatalf("newest first: got %s", records[0].TxHash)
	}
	if records[1].TxHash != "0xold1" {
		t.Fatalf("older second: got %s", records[1].TxHash)
	}
	if records[2].TxHash != "0xnots" {
		t.Fatalf("records without a timestamp sort last: got %s", records[2].TxHash)
	}
}

func TestHistoryPartialFailureKeepsTheOtherDirection(t *testing.T) {
	fetcher := &fakeFetcher{
		incoming:    []history.TransferRecord{record("0xaaa1", "0xaaa1:log:0", 5, ts(t, "2024-03-01T10:00:00Z"))},
		outgoingErr: errors.New("rate limited"),
	}
	records, err := newAggregator(fetcher).GetTransferHistory(
		context.Background(), history.Query{Subject: subject}, mainnet(t))

	partial := (*history.PartialHistoryError)(nil)
	if !errors.As(err, &partial) {
		t.Fatalf("expected *PartialHistoryError, got %v", err)
	}
	if partial.Direction != history.DirectionOutgoing {
		t.Fatalf("the failed direction must be named, got %s", partial.Direction)
	}
	if len(records) != 1 {
		t.Fatalf("the surviving direction's records must be returned, got %d", len(records))
	}
}

func TestHistoryBothDirectionsFailing(t *testing.T) {
	fetcher := &fakeFetcher{
		incomingErr: errors.New("boom in"),
		outgoingErr: errors.New("boom out"),
	}
	records, err := newAggregator(fetcher).GetTransferHistory(
		context.Background(), history.Query{Subject: subject}, mainnet(t))
	if !errors.Is(err, history.ErrIndexService) {
		t.Fatalf("expected ErrIndexService, got %v", err)
	}
	if records != nil {
		t.Fatalf("no records should be returned when both directions fail")
	}
}

// directionalFetcher routes each direction to its own func, so one side can
// block on the context while the other answers.
type directionalFetcher struct {
	incoming func(ctx context.Context) ([]history.TransferRecord, error)
	outgoing func(ctx context.Context) ([]history.TransferRecord, error)
}

func (f *directionalFetcher) FetchTransfers(ctx context.Context, network networks.Network, direction history.Direction, query history.Query) ([]history.TransferRecord, error) {
	if direction == history.DirectionIncoming {
		return f.incoming(ctx)
	}
	return f.outgoing(ctx)
}

func blockUntilCancelled(ctx context.Context) ([]history.TransferRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHistoryContextCancellationFailsBothDirections(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fetcher := &directionalFetcher{
		incoming: blockUntilCancelled,
		outgoing: blockUntilCancelled,
	}
	done := make(chan struct{})
	var records []history.TransferRecord
	var err error
	go func() {
		defer close(done)
		records, err = newAggregator(fetcher).GetTransferHistory(ctx, history.Query{Subject: subject}, mainnet(t))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("aggregation did not return after the context expired")
	}
	if !errors.Is(err, history.ErrIndexService) {
		t.Fatalf("both directions dying on the context wraps ErrIndexService, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("the context error must stay inspectable, got %v", err)
	}
	if records != nil {
		t.Fatalf("no records should survive a full cancellation")
	}
}

func TestHistoryContextCancellationOfOneDirectionIsPartial(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fetcher := &directionalFetcher{
		incoming: func(ctx context.Context) ([]history.TransferRecord, error) {
			return []history.TransferRecord{record("0xaaa1", "0xaaa1:log:0", 5, ts(t, "2024-03-01T10:00:00Z"))}, nil
		},
		outgoing: blockUntilCancelled,
	}
	records, err := newAggregator(fetcher).GetTransferHistory(ctx, history.Query{Subject: subject}, mainnet(t))

	partial := (*history.PartialHistoryError)(nil)
	if !errors.As(err, &partial) {
		t.Fatalf("expected *PartialHistoryError, got %v", err)
	}
	if partial.Direction != history.DirectionOutgoing {
		t.Fatalf("the cancelled direction must be named, got %s", partial.Direction)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("the context error must stay inspectable, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("the completed direction's records must be returned, got %d", len(records))
	}
}

func TestHistoryResolvesDottedSubject(t *testing.T) {
	addr := ethcommon.HexToAddress(subject)
	fetcher := &fakeFetcher{}
	agg := history.NewAggregator(fetcher,
		resolver.NewResolver(tableNameService{entries: map[string]ethcommon.Address{"vitalik.eth": addr}}))

	_, err := agg.GetTransferHistory(context.Background(), history.Query{Subject: "vitalik.eth"}, mainnet(t))
	if err != nil {
		t.Fatalf("GetTransferHistory: %s", err)
	}
	if fetcher.seenSubject != addr.Hex() {
		t.Fatalf("the fetcher must see the resolved hex subject, saw %q", fetcher.seenSubject)
	}
}
