package cmd

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/tjjd4/evm-mcp-server/config"
	"github.com/tjjd4/evm-mcp-server/decoder"
	"github.com/tjjd4/evm-mcp-server/explorers"
	"github.com/tjjd4/evm-mcp-server/history"
	"github.com/tjjd4/evm-mcp-server/networks"
	"github.com/tjjd4/evm-mcp-server/reader"
	"github.com/tjjd4/evm-mcp-server/resolver"
	"github.com/tjjd4/evm-mcp-server/trace"
)

// nodeCallerSource adapts the node client cache to the read-only caller the
// name resolver needs.
type nodeCallerSource struct {
	provider *reader.ClientProvider
}

func (s nodeCallerSource) CallerFor(network networks.Network) (resolver.ContractCaller, error) {
	return s.provider.GetOrCreate(network)
}

// nodeReaderSource adapts the node client cache to the transaction
// decoder's reader.
type nodeReaderSource struct {
	provider *reader.ClientProvider
}

func (s nodeReaderSource) ReaderFor(network networks.Network) (decoder.ChainReader, error) {
	return s.provider.GetOrCreate(network)
}

// appContext wires the shared components behind the subcommands. Built once
// on first use so commands that never touch the chain don't pay for it.
type appContext struct {
	cfg        *config.Config
	httpClient *http.Client
	nodes      *reader.ClientProvider
	resolver   *resolver.Resolver
	metadata   *explorers.MetadataProvider
	decoder    *decoder.Decoder
	history    *history.Aggregator
}

var (
	appOnce sync.Once
	app     *appContext
	appErr  error
)

func getApp() (*appContext, error) {
	appOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			appErr = err
			return
		}
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		nodes := reader.NewClientProvider(cfg.HTTPTimeout)
		res := resolver.NewResolver(resolver.NewENSService(nodeCallerSource{provider: nodes}))
		metadata := explorers.NewMetadataProvider(res, cfg.EtherscanAPIKey, httpClient)
		app = &appContext{
			cfg:        cfg,
			httpClient: httpClient,
			nodes:      nodes,
			resolver:   res,
			metadata:   metadata,
			decoder:    decoder.NewDecoder(nil),
			history:    history.NewAggregator(history.NewAlchemyFetcher(cfg.AlchemyAPIKey, httpClient), res),
		}
	})
	return app, appErr
}

// currentNetwork maps the persistent --network flag to a network table
// entry.
func currentNetwork() (networks.Network, error) {
	return networks.GetNetwork(config.Network)
}

// traceClientFor returns a trace client for the network, preferring the
// TRACE_SERVICE_URL override. Not every network has a trace service.
func (a *appContext) traceClientFor(network networks.Network) (*trace.Client, error) {
	endpoint := a.cfg.TraceServiceURL
	if endpoint == "" {
		endpoint = network.GetTraceServiceURL()
	}
	if endpoint == "" {
		return nil, fmt.Errorf("%s has no trace service configured, set TRACE_SERVICE_URL", network.GetName())
	}
	return trace.NewClient(endpoint, a.httpClient), nil
}

// decoderFor returns a calldata decoder whose fallback tier uses the
// network's trace service when one is configured.
func (a *appContext) decoderFor(network networks.Network) *decoder.Decoder {
	traceClient, err := a.traceClientFor(network)
	if err != nil {
		return a.decoder
	}
	return decoder.NewDecoder(traceClient)
}
