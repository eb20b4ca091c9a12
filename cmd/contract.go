package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/common"
)

var abiCmd = &cobra.Command{
	Use:   "abi <address or name>",
	Short: "Fetch the verified ABI of a contract from the block explorer",
	Args:  cobra.ExactArgs(1),
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
		abiStr, verified, err := app.metadata.GetABIString(cmd.Context(), args[0], network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		if !verified {
			fmt.Printf("%s: contract is %s on %s\n", args[0], common.VerifiedColor(false), network.GetName())
			return
		}
		fmt.Println(abiStr)
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source <address or name>",
	Short: "Fetch the verified source of a contract from the block explorer",
	Long: `Multi-file uploads are flattened to their base filenames; each file is
printed with a header line.`,
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
		bundle, verified, err := app.metadata.GetSource(cmd.Context(), args[0], network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		if !verified {
			fmt.Printf("%s: contract is %s on %s\n", args[0], common.VerifiedColor(false), network.GetName())
			return
		}
		fmt.Printf("Contract: %s (compiler %s, %d files)\n",
			common.InfoColor(bundle.ContractName), bundle.CompilerVersion, len(bundle.Files))
		names := make([]string, 0, len(bundle.Files))
		for name := range bundle.Files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("\n===== %s =====\n%s\n", common.InfoColor(name), bundle.Files[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(abiCmd)
	rootCmd.AddCommand(sourceCmd)
}
