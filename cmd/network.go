package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/networks"
)

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of the supported networks",
	Run: func(cmd *cobra.Command, args []string) {
		for i, n := range networks.GetSupportedNetworks() {
			names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
			fmt.Printf("%d. %s (chain ID %d, native token %s)\n",
				i+1, strings.Join(names, " / "), n.GetChainID(), n.GetNativeTokenSymbol())
			for name, url := range n.GetDefaultNodes() {
				fmt.Printf("    - node %s: %s\n", name, url)
			}
			if _, hasENS := n.GetENSRegistry(); hasENS {
				fmt.Printf("    - name resolution: supported\n")
			}
			if n.GetTraceServiceURL() != "" {
				fmt.Printf("    - trace service: %s\n", n.GetTraceServiceURL())
			}
		}
	},
}

var checkNetworkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dial the selected network's node and verify its chain id",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := getApp()
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		network, err := currentNetwork()
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		node, err := app.nodes.GetOrCreate(network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		id, err := node.ChainID(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		if id != network.GetChainID() {
			fmt.Printf("Node %s reports chain id %d, expected %d for %s\n",
				node.NodeURL(), id, network.GetChainID(), network.GetName())
			return
		}
		fmt.Printf("Node %s serves %s (chain id %d)\n", node.NodeURL(), network.GetName(), id)
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect the networks this tool supports",
}

func init() {
	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(checkNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
