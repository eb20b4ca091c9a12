package history_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tjjd4/evm-mcp-server/history"
)

const transfersResponse = `{"jsonrpc":"2.0","id":1,"result":{"transfers":[
	{
		"uniqueId":"0xaaa1:log:12",
		"hash":"0xaaa1",
		"from":"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		"to":"0x4838b106fce9647bdf1e7877bf73ce8b0bad5f97",
		"asset":"USDT",
		"category":"erc20",
		"rawContract":{"value":"0xf4240","address":"0xdac17f958d2ee523a2206206994597c13d831ec7","decimal":"0x6"},
		"metadata":{"blockTimestamp":"2024-03-01T10:00:00.000Z"}
	},
	{
		"uniqueId":"0xbbb2:external",
		"hash":"0xbbb2",
		"from":"0x4838b106fce9647bdf1e7877bf73ce8b0bad5f97",
		"to":"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		"asset":"ETH",
		"category":"external",
		"rawContract":{"value":"0xde0b6b3a7640000","address":"","decimal":"0x12"},
		"metadata":{"blockTimestamp":""}
	}
]}}`

func transferIndexStub(t *testing.T) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	params := &[]map[string]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request: %s", err)
			return
		}
		req := struct {
			Method string           `json:"method"`
			Params []map[string]any `json:"params"`
		}{}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request %s: %s", string(body), err)
			return
		}
		if req.Method != "alchemy_getAssetTransfers" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if len(req.Params) == 1 {
			*params = append(*params, req.Params[0])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(transfersResponse))
	}))
	return server, params
}

func TestFetchTransfersIncoming(t *testing.T) {
	server, params := transferIndexStub(t)
	defer server.Close()

	fetcher := history.NewAlchemyFetcherWithEndpoint(server.URL, server.Client())
	records, err := fetcher.FetchTransfers(context.Background(), mainnet(t),
		history.DirectionIncoming, history.Query{Subject: subject})
	if err != nil {
		t.Fatalf("FetchTransfers: %s", err)
	}

	sent := (*params)[0]
	if sent["toAddress"] != subject {
		t.Fatalf("incoming queries pin toAddress, sent %v", sent["toAddress"])
	}
	if _, present := sent["fromAddress"]; present {
		t.Fatalf("no counterpart means no fromAddress, sent %v", sent["fromAddress"])
	}
	if sent["withMetadata"] != true {
		t.Fatalf("block timestamps need withMetadata, sent %v", sent["withMetadata"])
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	erc20 := records[0]
	if erc20.Value == nil || erc20.Value.String() != "1000000" {
		t.Fatalf("raw value must come from rawContract.value, got %v", erc20.Value)
	}
	if erc20.Asset != "0xdAC17F958D2ee523a2206206994597C13D831ec7" {
		t.Fatalf("asset must be the checksummed token contract, got %q", erc20.Asset)
	}
	if erc20.From != "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045" {
		t.Fatalf("from must be checksummed, got %q", erc20.From)
	}
	if erc20.Symbol != "USDT" {
		t.Fatalf("symbol: got %q", erc20.Symbol)
	}
	if erc20.Timestamp == nil || erc20.Timestamp.UTC().Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("timestamp wrong: %v", erc20.Timestamp)
	}

	native := records[1]
	if native.Asset != "" {
		t.Fatalf("native transfers carry no contract address, got %q", native.Asset)
	}
	if native.Timestamp != nil {
		t.Fatalf("an empty blockTimestamp maps to a nil timestamp")
	}
	if native.Value == nil || native.Value.String() != "1000000000000000000" {
		t.Fatalf("native raw value wrong: %v", native.Value)
	}
}

func TestFetchTransfersOutgoingWithCounterpart(t *testing.T) {
	server, params := transferIndexStub(t)
	defer server.Close()

	counterpart := "0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97"
	fetcher := history.NewAlchemyFetcherWithEndpoint(server.URL, server.Client())
	_, err := fetcher.FetchTransfers(context.Background(), mainnet(t),
		history.DirectionOutgoing, history.Query{
			Subject:     subject,
			Counterpart: counterpart,
			Categories:  []string{"erc20"},
			MaxCount:    25,
		})
	if err != nil {
		t.Fatalf("FetchTransfers: %s", err)
	}

	sent := (*params)[0]
	if sent["fromAddress"] != subject {
		t.Fatalf("outgoing queries pin fromAddress, sent %v", sent["fromAddress"])
	}
	if sent["toAddress"] != counterpart {
		t.Fatalf("the counterpart pins the opposite side, sent %v", sent["toAddress"])
	}
	categories, _ := sent["category"].([]any)
	if len(categories) != 1 || categories[0] != "erc20" {
		t.Fatalf("categories wrong: %v", sent["category"])
	}
	if sent["maxCount"] != "0x19" {
		t.Fatalf("maxCount must go out as hex, sent %v", sent["maxCount"])
	}
}

func TestFetchTransfersIndexError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"capacity exceeded"}}`))
	}))
	defer server.Close()

	fetcher := history.NewAlchemyFetcherWithEndpoint(server.URL, server.Client())
	_, err := fetcher.FetchTransfers(context.Background(), mainnet(t),
		history.DirectionIncoming, history.Query{Subject: subject})
	if err == nil {
		t.Fatalf("expected the index error to surface")
	}
}
