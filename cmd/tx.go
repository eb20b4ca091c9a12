package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/decoder"
)

var txCmd = &cobra.Command{
	Use:   "tx <tx hash>",
	Short: "Fetch a transaction and decode its calldata",
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
		td := decoder.NewTransactionDecoder(app.decoderFor(network), nodeReaderSource{provider: app.nodes}, app.metadata)
		call, err := td.DecodeForTransaction(cmd.Context(), args[0], network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		fmt.Printf("Tx: %s\n", call.TxHash)
		switch call.Kind {
		case decoder.KindDeploy:
			fmt.Printf("Contract deployment (%d bytes of init code)\n", (len(call.CallData)-2)/2)
		case decoder.KindTransfer:
			fmt.Printf("Plain %s transfer to %s\n", network.GetNativeTokenSymbol(), common.InfoColor(call.To))
		case decoder.KindFallback:
			fmt.Printf("Empty-calldata call to contract %s (receive/fallback)\n", common.InfoColor(call.To))
		case decoder.KindCall:
			fmt.Printf("To: %s\n", common.InfoColor(call.To))
			printDecodedCall(call.Decoded)
		}
	},
}

func init() {
	rootCmd.AddCommand(txCmd)
}
