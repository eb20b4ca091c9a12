package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/config"
	"github.com/tjjd4/evm-mcp-server/networks"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evmctx",
	Short: "Resolve, decode and inspect EVM contracts and transactions",
	Long: fmt.Sprintf(`evmctx is a command line tool to inspect EVM chains: it resolves
addresses and dotted names, fetches verified contract ABIs and source,
decodes transaction calldata and aggregates transfer histories.

Supported networks: %s.

Every command takes --network to pick the chain. Custom nodes can be set
per network via env vars (ETHEREUM_MAINNET_NODE, BSC_MAINNET_NODE, ...);
the tool takes the env vars blindly and any invalid url will surface as an
error during command execution.

Explorer lookups use etherscan's v2 API. The default key is rate limited,
set ETHERSCAN_API_KEY for stable usage. Transfer history queries need
ALCHEMY_API_KEY.`,
		strings.Join(networks.GetSupportedNetworkNames(), ", "),
	),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(
		&config.Network, "network", "k", "mainnet",
		fmt.Sprintf("EVM network. Valid values: %s.", strings.Join(networks.GetSupportedNetworkNames(), ", ")),
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
