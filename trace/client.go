package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/tjjd4/evm-mcp-server/common"
)

// TraceServiceError is a structured failure returned by the trace service
// itself, as opposed to a transport failure.
type TraceServiceError struct {
	Code    int
	Message string
}

func (e *TraceServiceError) Error() string {
	return fmt.Sprintf("trace service error %d: %s", e.Code, e.Message)
}

// Client talks JSON-RPC 2.0 to an external transaction trace service.
type Client struct {
	endpoint   string
	httpClient *http.Client

	nextID uint64
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("couldn't build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TraceServiceError{Code: resp.StatusCode, Message: string(body)}
	}
	rpcResp := rpcResponse{}
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal %s response %s: %w", method, string(body), err)
	}
	if rpcResp.Error != nil {
		return nil, &TraceServiceError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}
	return rpcResp.Result, nil
}

// TraceTransaction fetches the full execution trace of a mined transaction.
// The trace shape is service-defined so the result stays raw JSON.
func (c *Client) TraceTransaction(ctx context.Context, txHash string) (json.RawMessage, error) {
	if !common.IsTxHash(txHash) {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidHashFormat, txHash)
	}
	return c.call(ctx, "traceTransaction", []any{common.NormalizeTxHash(txHash)})
}

// DecodeInput asks the trace service to decode raw calldata against its
// signature database.
func (c *Client) DecodeInput(ctx context.Context, data string) (*DecodedInput, error) {
	if !common.IsHexData(data) || !common.HasSelector(data) {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidCallDataFormat, data)
	}
	raw, err := c.call(ctx, "decodeInput", []any{data})
	if err != nil {
		return nil, err
	}
	wire := wireDecodedInput{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal decodeInput result %s: %w", string(raw), err)
	}
	return wire.toDecodedInput(), nil
}
