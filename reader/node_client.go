package reader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const DefaultTimeout = 15 * time.Second

// NodeClient wraps a single JSON-RPC node. The connection is established
// lazily on first use and reused afterwards.
type NodeClient struct {
	nodeName string
	nodeURL  string
	timeout  time.Duration

	mu        sync.Mutex
	client    *rpc.Client
	ethClient *ethclient.Client
}

func NewNodeClient(name, url string, timeout time.Duration) *NodeClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NodeClient{
		nodeName: name,
		nodeURL:  url,
		timeout:  timeout,
	}
}

func (nc *NodeClient) NodeName() string {
	return nc.nodeName
}

func (nc *NodeClient) NodeURL() string {
	return nc.nodeURL
}

func (nc *NodeClient) ethCli() (*ethclient.Client, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.ethClient != nil {
		return nc.ethClient, nil
	}
	client, err := rpc.Dial(nc.nodeURL)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", nc.nodeName, err)
	}
	nc.client = client
	nc.ethClient = ethclient.NewClient(client)
	return nc.ethClient, nil
}

func (nc *NodeClient) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, nc.timeout)
}

// TransactionByHash returns the transaction and whether it is still pending.
func (nc *NodeClient) TransactionByHash(ctx context.Context, hash ethcommon.Hash) (*types.Transaction, bool, error) {
	cli, err := nc.ethCli()
	if err != nil {
		return nil, false, err
	}
	timeout, cancel := nc.boundCtx(ctx)
	defer cancel()
	tx, isPending, err := cli.TransactionByHash(timeout, hash)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", nc.nodeName, err)
	}
	return tx, isPending, nil
}

// GetCode returns the deployed bytecode at address, empty for an EOA.
func (nc *NodeClient) GetCode(ctx context.Context, address ethcommon.Address) ([]byte, error) {
	cli, err := nc.ethCli()
	if err != nil {
		return nil, err
	}
	timeout, cancel := nc.boundCtx(ctx)
	defer cancel()
	code, err := cli.CodeAt(timeout, address, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nc.nodeName, err)
	}
	return code, nil
}

// CallContract performs a read-only eth_call against the latest block.
func (nc *NodeClient) CallContract(ctx context.Context, to ethcommon.Address, data []byte) ([]byte, error) {
	cli, err := nc.ethCli()
	if err != nil {
		return nil, err
	}
	timeout, cancel := nc.boundCtx(ctx)
	defer cancel()
	out, err := cli.CallContract(timeout, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nc.nodeName, err)
	}
	return out, nil
}

// ChainID queries the connected node for its chain id.
func (nc *NodeClient) ChainID(ctx context.Context) (uint64, error) {
	cli, err := nc.ethCli()
	if err != nil {
		return 0, err
	}
	timeout, cancel := nc.boundCtx(ctx)
	defer cancel()
	id, err := cli.ChainID(timeout)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", nc.nodeName, err)
	}
	return id.Uint64(), nil
}
