package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjjd4/evm-mcp-server/common"
	"github.com/tjjd4/evm-mcp-server/history"
)

var (
	historyCounterpart string
	historyCategories  []string
	historyMaxCount    int
)

var historyCmd = &cobra.Command{
	Use:   "history <address or name>",
	Short: "Show the transfer history of an address, newest first",
	Long: `Queries the transfer index in both directions concurrently and merges the
results. If one direction fails the other half is still shown, with a
warning naming the missing side.`,
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
		query := history.Query{
			Subject:     args[0],
			Counterpart: historyCounterpart,
			Categories:  historyCategories,
			MaxCount:    historyMaxCount,
		}
		records, err := app.history.GetTransferHistory(cmd.Context(), query, network)
		partial := (*history.PartialHistoryError)(nil)
		switch {
		case err == nil:
		case errors.As(err, &partial):
			fmt.Printf("%s\n", common.AlertColor(fmt.Sprintf("Warning: %s", partial)))
		default:
			fmt.Printf("Error: %s\n", err)
			return
		}

		if len(records) == 0 {
			fmt.Printf("No transfers found for %s on %s\n", args[0], network.GetName())
			return
		}
		for i, record := range records {
			printTransferRecord(i+1, record, network.GetNativeTokenSymbol())
		}
	},
}

func printTransferRecord(index int, record history.TransferRecord, nativeSymbol string) {
	when := "unknown time"
	if record.Timestamp != nil {
		when = record.Timestamp.Format("2006-01-02 15:04:05 MST")
	}
	symbol := record.Symbol
	if symbol == "" {
		if record.Asset == "" {
			symbol = nativeSymbol
		} else {
			symbol = record.Asset
		}
	}
	value := "?"
	if record.Value != nil {
		value = record.Value.String()
	}
	fmt.Printf("%d. [%s] %s: %s %s raw, %s -> %s (tx %s)\n",
		index, when, record.Category, value, common.InfoColor(symbol),
		record.From, record.To, record.TxHash)
}

func init() {
	historyCmd.PersistentFlags().StringVarP(&historyCounterpart, "with", "w", "", "Only transfers between the subject and this address or name")
	historyCmd.PersistentFlags().StringSliceVarP(&historyCategories, "category", "c", nil, "Transfer categories to include (external, erc20, erc721, erc1155)")
	historyCmd.PersistentFlags().IntVarP(&historyMaxCount, "max", "m", 0, "Max transfers per direction, 0 for the service default")
	rootCmd.AddCommand(historyCmd)
}
