package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/decoder"
)

var decodeContract string

var decodeCmd = &cobra.Command{
	Use:   "decode <calldata>",
	Short: "Decode raw calldata",
	Long: `Decodes calldata against the target contract's verified ABI when
--contract is given, otherwise (or when the ABI misses the selector) against
the trace service's signature database. Heuristic results are marked as such,
they are selector collisions waiting to happen.`,
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

		dec := app.decoderFor(network)
		var call *decoder.DecodedCall
		if decodeContract != "" {
			parsed, verified, err := app.metadata.GetABI(cmd.Context(), decodeContract, network)
			if err != nil {
				fmt.Printf("Error: %s\n", err)
				return
			}
			if !verified {
				fmt.Printf("Note: %s is %s on %s, falling back to the signature database\n",
					decodeContract, common.VerifiedColor(false), network.GetName())
			}
			call, err = dec.Decode(cmd.Context(), args[0], parsed)
			if err != nil {
				fmt.Printf("Error: %s\n", err)
				return
			}
		} else {
			call, err = dec.Decode(cmd.Context(), args[0], nil)
			if err != nil {
				fmt.Printf("Error: %s\n", err)
				return
			}
		}
		printDecodedCall(call)
	},
}

func printDecodedCall(call *decoder.DecodedCall) {
	source := common.InfoColor(string(call.Source))
	if call.Source == decoder.SourceHeuristic {
		source = common.AlertColor(string(call.Source))
	}
	fmt.Printf("%s (%s)\n", common.InfoColor(call.FunctionName), source)
	for _, arg := range call.Args {
		rendered, err := json.Marshal(arg.Value)
		if err != nil {
			rendered = []byte(fmt.Sprintf("%+v", arg.Value))
		}
		if arg.Name != "" {
			fmt.Printf("  %s %s = %s\n", arg.Type, arg.Name, string(rendered))
			continue
		}
		fmt.Printf("  %s = %s\n", arg.Type, string(rendered))
	}
}

func init() {
	decodeCmd.PersistentFlags().StringVarP(&decodeContract, "contract", "c", "", "Target contract address or name, enables ABI based decoding")
	rootCmd.AddCommand(decodeCmd)
}
