package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
	"github.com/tranvictor/schoolfactory/ui"
)

func entryRow(i int, e schoolfactory.Entry) []string {
	id := hexutil.Encode(e.Selector())
	mutability := ui.Label(string(e.StateMutability))
	outputs := "(" + strings.Join(e.OutputTypes(), ",") + ")"
	if e.IsEvent() {
		id = e.Topic().Hex()
		mutability = "-"
		outputs = "-"
	}
	return []string{
		fmt.Sprintf("%d", i),
		ui.Label(string(e.Type)),
		e.Signature(),
		id,
		mutability,
		outputs,
	}
}

var interfaceCmd = &cobra.Command{
	Use:     "interface",
	Aliases: []string{"abi"},
	Short:   "Show the SchoolFactory address and every entry of its interface",
	Long: `Print the contract address and, for every entry in declaration order, its
kind, canonical signature, selector (functions) or topic (events), state
mutability and output types. With --json the ABI json is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.JSONOutput {
			_, err := fmt.Fprintln(appUI.Writer(), schoolfactory.ABIJSON())
			return err
		}
		appUI.Section("SchoolFactory")
		appUI.KeyValue([][2]string{
			{"Address", schoolfactory.Address},
			{"Functions", fmt.Sprintf("%d", len(schoolfactory.Functions()))},
			{"Events", fmt.Sprintf("%d", len(schoolfactory.Events()))},
		})
		rows := [][]string{}
		for i, e := range schoolfactory.Interface() {
			rows = append(rows, entryRow(i, e))
		}
		appUI.Table([]string{"#", "Kind", "Signature", "Selector/Topic", "Mutability", "Outputs"}, rows)
		return nil
	},
}

func init() {
	interfaceCmd.Flags().BoolVar(&config.JSONOutput, "json", false, "print the ABI json")
	rootCmd.AddCommand(interfaceCmd)
}
