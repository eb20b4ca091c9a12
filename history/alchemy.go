package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/networks"
)

// defaultCategories is what alchemy_getAssetTransfers is asked for when the
// query doesn't narrow categories itself.
var defaultCategories = []string{"external", "erc20", "erc721", "erc1155"}

const defaultMaxCount = 1000

// AlchemyFetcher queries an alchemy-style transfer index over JSON-RPC.
type AlchemyFetcher struct {
	apiKey     string
	httpClient *http.Client
	// endpoint overrides the per-network indexer URL, for tests
	endpoint string

	nextID uint64
}

func NewAlchemyFetcher(apiKey string, httpClient *http.Client) *AlchemyFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AlchemyFetcher{
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// NewAlchemyFetcherWithEndpoint pins the fetcher to one endpoint regardless
// of network.
func NewAlchemyFetcherWithEndpoint(endpoint string, httpClient *http.Client) *AlchemyFetcher {
	f := NewAlchemyFetcher("", httpClient)
	f.endpoint = endpoint
	return f
}

func (f *AlchemyFetcher) endpointFor(network networks.Network) (string, error) {
	if f.endpoint != "" {
		return f.endpoint, nil
	}
	base := network.GetDefaultIndexerURL()
	if base == "" {
		return "", fmt.Errorf("%s has no transfer index endpoint", network.GetName())
	}
	if f.apiKey != "" {
		return strings.TrimSuffix(base, "/") + "/" + f.apiKey, nil
	}
	return base, nil
}

type assetTransfersParams struct {
	FromBlock         string   `json:"fromBlock"`
	ToBlock           string   `json:"toBlock"`
	FromAddress       string   `json:"fromAddress,omitempty"`
	ToAddress         string   `json:"toAddress,omitempty"`
	Category          []string `json:"category"`
	WithMetadata      bool     `json:"withMetadata"`
	ExcludeZeroValue  bool     `json:"excludeZeroValue"`
	MaxCount          string   `json:"maxCount"`
	Order             string   `json:"order"`
	ContractAddresses []string `json:"contractAddresses,omitempty"`
}

type assetTransfersResult struct {
	Transfers []wireTransfer `json:"transfers"`
}

type wireTransfer struct {
	UniqueID    string           `json:"uniqueId"`
	Hash        string           `json:"hash"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Asset       string           `json:"asset"`
	Category    string           `json:"category"`
	RawContract wireRawContract  `json:"rawContract"`
	Metadata    wireBlockstamped `json:"metadata"`
}

type wireRawContract struct {
	Value   string `json:"value"`
	Address string `json:"address"`
	Decimal string `json:"decimal"`
}

type wireBlockstamped struct {
	BlockTimestamp string `json:"blockTimestamp"`
}

// FetchTransfers runs one directional alchemy_getAssetTransfers query.
// Incoming sets toAddress to the subject, outgoing sets fromAddress; a
// counterpart pins the opposite side.
func (f *AlchemyFetcher) FetchTransfers(ctx context.Context, network networks.Network, direction Direction, query Query) ([]TransferRecord, error) {
	endpoint, err := f.endpointFor(network)
	if err != nil {
		return nil, err
	}

	categories := query.Categories
	if len(categories) == 0 {
		categories = defaultCategories
	}
	maxCount := query.MaxCount
	if maxCount <= 0 {
		maxCount = defaultMaxCount
	}
	params := assetTransfersParams{
		FromBlock:    "0x0",
		ToBlock:      "latest",
		Category:     categories,
		WithMetadata: true,
		MaxCount:     fmt.Sprintf("0x%x", maxCount),
		Order:        "desc",
	}
	switch direction {
	case DirectionIncoming:
		params.ToAddress = query.Subject
		params.FromAddress = query.Counterpart
	case DirectionOutgoing:
		params.FromAddress = query.Subject
		params.ToAddress = query.Counterpart
	default:
		return nil, fmt.Errorf("unknown transfer direction %q", direction)
	}

	result, err := f.call(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	records := make([]TransferRecord, 0, len(result.Transfers))
	for _, transfer := range result.Transfers {
		records = append(records, transfer.toRecord())
	}
	return records, nil
}

func (f *AlchemyFetcher) call(ctx context.Context, endpoint string, params assetTransfersParams) (*assetTransfersResult, error) {
	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      atomic.AddUint64(&f.nextID, 1),
		"method":  "alchemy_getAssetTransfers",
		"params":  []any{params},
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal transfer query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("couldn't build transfer query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transfer query failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read transfer query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transfer index returned status %d: %s", resp.StatusCode, string(body))
	}
	rpcResp := struct {
		Result *assetTransfersResult `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal transfer query response %s: %w", string(body), err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("transfer index error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if rpcResp.Result == nil {
		return nil, fmt.Errorf("transfer index returned no result: %s", string(body))
	}
	return rpcResp.Result, nil
}

func (t wireTransfer) toRecord() TransferRecord {
	record := TransferRecord{
		UniqueID: t.UniqueID,
		TxHash:   t.Hash,
		From:     checksummed(t.From),
		To:       checksummed(t.To),
		Asset:    checksummed(t.RawContract.Address),
		Symbol:   t.Asset,
		Category: t.Category,
	}
	if t.RawContract.Value != "" {
		if value, ok := new(big.Int).SetString(strings.TrimPrefix(t.RawContract.Value, "0x"), 16); ok {
			record.Value = value
		}
	}
	if t.Metadata.BlockTimestamp != "" {
		if ts, err := time.Parse(time.RFC3339, t.Metadata.BlockTimestamp); err == nil {
			record.Timestamp = &ts
		}
	}
	return record
}

// checksummed normalizes the indexer's lowercase hex to EIP-55 form,
// leaving non-address fields (empty asset for native transfers) untouched.
func checksummed(str string) string {
	if !common.IsAddress(str) {
		return str
	}
	return common.NormalizeAddress(str)
}
