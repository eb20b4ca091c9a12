package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/resolver"
)

// TransferFetcher runs one directional query against a transfer index.
type TransferFetcher interface {
	FetchTransfers(ctx context.Context, network networks.Network, direction Direction, query Query) ([]TransferRecord, error)
}

// Aggregator builds a full transfer history for an address by querying both
// directions of the index concurrently and merging the results.
type Aggregator struct {
	fetcher  TransferFetcher
	resolver *resolver.Resolver
	logger   logrus.FieldLogger
}

func NewAggregator(fetcher TransferFetcher, res *resolver.Resolver) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		resolver: res,
		logger:   logrus.StandardLogger().WithField("module", "history"),
	}
}

type directionResult struct {
	direction Direction
	records   []TransferRecord
	err       error
}

// GetTransferHistory returns the merged incoming and outgoing transfers of
// query.Subject, newest first. If exactly one direction fails the other
// direction's records are returned together with a *PartialHistoryError; if
// both fail the error wraps ErrIndexService.
func (a *Aggregator) GetTransferHistory(ctx context.Context, query Query, network networks.Network) ([]TransferRecord, error) {
	subject, err := a.resolver.Resolve(ctx, query.Subject, network)
	if err != nil {
		return nil, err
	}
	query.Subject = subject.Hex()
	if query.Counterpart != "" {
		counterpart, err := a.resolver.Resolve(ctx, query.Counterpart, network)
		if err != nil {
			return nil, err
		}
		query.Counterpart = counterpart.Hex()
	}

	directions := []Direction{DirectionIncoming, DirectionOutgoing}
	results := make(chan directionResult, len(directions))
	wg := sync.WaitGroup{}
	for _, direction := range directions {
		wg.Add(1)
		go func(direction Direction) {
			defer wg.Done()
			records, err := a.fetcher.FetchTransfers(ctx, network, direction, query)
			results <- directionResult{direction: direction, records: records, err: err}
		}(direction)
	}
	wg.Wait()
	close(results)

	merged := []TransferRecord{}
	var failures []directionResult
	for result := range results {
		if result.err != nil {
			a.logger.WithError(result.err).WithField("direction", result.direction).
				Warn("directional transfer query failed")
			failures = append(failures, result)
			continue
		}
		merged = append(merged, result.records...)
	}

	if len(failures) == len(directions) {
		errs := make([]error, 0, len(failures)+1)
		errs = append(errs, ErrIndexService)
		for _, failure := range failures {
			errs = append(errs, fmt.Errorf("%s: %w", failure.direction, failure.err))
		}
		return nil, errors.Join(errs...)
	}

	merged = dedupTransfers(merged)
	sortTransfers(merged)

	if len(failures) == 1 {
		return merged, &PartialHistoryError{
			Direction: failures[0].direction,
			Err:       failures[0].err,
		}
	}
	return merged, nil
}

// dedupTransfers drops records sharing an identity key, keeping the first
// occurrence. Both directional queries return a self-transfer, so overlap is
// expected.
func dedupTransfers(records []TransferRecord) []TransferRecord {
	seen := map[string]bool{}
	out := records[:0]
	for _, record := range records {
		key := record.identityKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, record)
	}
	return out
}

// sortTransfers orders newest first. Records without a timestamp sink to the
// end; the sort is stable so ties keep their fetch order.
func sortTransfers(records []TransferRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Timestamp, records[j].Timestamp
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}
