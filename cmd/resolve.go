package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/common"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <address or name>",
	Short: "Resolve an address or a dotted name to a checksummed address",
	Long: `Hex addresses are checksummed locally without touching the network.
Dotted names are looked up through the network's on-chain name registry.`,
	Args: cobra.ExactArgs(1),
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
		resolved, err := app.resolver.Resolve(cmd.Context(), args[0], network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		if resolved.Alias != "" {
			fmt.Printf("%s (%s)\n", common.InfoColor(resolved.Hex()), resolved.Alias)
			return
		}
		fmt.Printf("%s\n", common.InfoColor(resolved.Hex()))
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
