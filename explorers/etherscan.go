package explorers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

const notVerifiedResult = "Contract source code not verified"

// MetadataFetchError is a transport or upstream failure while talking to the
// block explorer. An unverified contract is NOT an error, see the bool
// results on GetABI/GetSource.
type MetadataFetchError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *MetadataFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("explorer metadata fetch failed: %s", e.Err)
	}
	return fmt.Sprintf("explorer metadata fetch failed: status %d: %s", e.StatusCode, e.Message)
}

func (e *MetadataFetchError) Unwrap() error {
	return e.Err
}

// EtherscanClient talks to one etherscan-style API for one chain id.
type EtherscanClient struct {
	Domain  string
	APIKey  string
	ChainID uint64

	httpClient *http.Client
}

func NewEtherscanClient(domain, apiKey string, chainID uint64, httpClient *http.Client) *EtherscanClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EtherscanClient{
		Domain:     domain,
		APIKey:     apiKey,
		ChainID:    chainID,
		httpClient: httpClient,
	}
}

func (ec *EtherscanClient) getABIAPIURL(address string) string {
	return fmt.Sprintf(
		"%s/api?chainid=%d&module=contract&action=getabi&address=%s&apikey=%s",
		ec.Domain,
		ec.ChainID,
		address,
		ec.APIKey,
	)
}

func (ec *EtherscanClient) getSourceAPIURL(address string) string {
	return fmt.Sprintf(
		"%s/api?chainid=%d&module=contract&action=getsourcecode&address=%s&apikey=%s",
		ec.Domain,
		ec.ChainID,
		address,
		ec.APIKey,
	)
}

type abiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

type sourceResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Result  []sourceCodeRecord `json:"result"`
}

type sourceCodeRecord struct {
	SourceCode      string `json:"SourceCode"`
	ABI             string `json:"ABI"`
	ContractName    string `json:"ContractName"`
	CompilerVersion string `json:"CompilerVersion"`
	Proxy           string `json:"Proxy"`
	Implementation  string `json:"Implementation"`
}

func (ec *EtherscanClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &MetadataFetchError{Err: err}
	}
	resp, err := ec.httpClient.Do(req)
	if err != nil {
		return nil, &MetadataFetchError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &MetadataFetchError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &MetadataFetchError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return body, nil
}

// GetABIString fetches the verified ABI JSON of a contract. The bool result
// is false when the contract is not verified, which is a normal outcome.
func (ec *EtherscanClient) GetABIString(ctx context.Context, address string) (string, bool, error) {
	body, err := ec.get(ctx, ec.getABIAPIURL(address))
	if err != nil {
		return "", false, err
	}
	abiResp := abiResponse{}
	if err := json.Unmarshal(body, &abiResp); err != nil {
		return "", false, &MetadataFetchError{Err: fmt.Errorf("couldn't unmarshal %s: %w", string(body), err)}
	}
	if abiResp.Status != "1" {
		if strings.Contains(abiResp.Result, notVerifiedResult) {
			return "", false, nil
		}
		return "", false, &MetadataFetchError{Message: fmt.Sprintf("%s: %s", abiResp.Message, abiResp.Result)}
	}
	return abiResp.Result, true, nil
}

// GetABI fetches and parses the verified ABI of a contract.
func (ec *EtherscanClient) GetABI(ctx context.Context, address string) (*ethabi.ABI, bool, error) {
	abiStr, verified, err := ec.GetABIString(ctx, address)
	if err != nil || !verified {
		return nil, false, err
	}
	parsed, err := ethabi.JSON(strings.NewReader(abiStr))
	if err != nil {
		return nil, false, &MetadataFetchError{Err: fmt.Errorf("explorer returned unparseable abi: %w", err)}
	}
	return &parsed, true, nil
}

// GetSource fetches the verified source of a contract, flattened to a
// mapping from base filename to content.
func (ec *EtherscanClient) GetSource(ctx context.Context, address string) (*SourceBundle, bool, error) {
	body, err := ec.get(ctx, ec.getSourceAPIURL(address))
	if err != nil {
		return nil, false, err
	}
	srcResp := sourceResponse{}
	if err := json.Unmarshal(body, &srcResp); err != nil {
		return nil, false, &MetadataFetchError{Err: fmt.Errorf("couldn't unmarshal %s: %w", string(body), err)}
	}
	if srcResp.Status != "1" {
		return nil, false, &MetadataFetchError{Message: srcResp.Message}
	}
	if len(srcResp.Result) == 0 {
		return nil, false, nil
	}

	record := srcResp.Result[0]
	if record.SourceCode == "" {
		// etherscan reports unverified contracts with status 1 and an empty
		// source record
		return nil, false, nil
	}

	bundle := &SourceBundle{
		ContractName:    record.ContractName,
		CompilerVersion: record.CompilerVersion,
		Files:           flattenSources(record.ContractName, record.SourceCode),
	}
	return bundle, true, nil
}
