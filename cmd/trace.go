package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <tx hash>",
	Short: "Fetch the execution trace of a transaction from the trace service",
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
		client, err := app.traceClientFor(network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		raw, err := client.TraceTransaction(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		pretty := bytes.Buffer{}
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			fmt.Println(string(raw))
			return
		}
		fmt.Println(pretty.String())
	},
}

var selectorCmd = &cobra.Command{
	Use:   "selector <calldata>",
	Short: "Decode calldata through the trace service's signature database only",
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
		client, err := app.traceClientFor(network)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		decoded, err := client.DecodeInput(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return
		}
		fmt.Printf("%s\n", decoded.Name)
		for _, arg := range decoded.Args {
			rendered, err := json.Marshal(arg)
			if err != nil {
				rendered = []byte(fmt.Sprintf("%+v", arg))
			}
			fmt.Printf("  %s\n", string(rendered))
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(selectorCmd)
}
