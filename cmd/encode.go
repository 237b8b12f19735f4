package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/schoolfactory/cmd/util"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <function> [params...]",
	Short: "Encode calldata for a SchoolFactory function",
	Long: `Encode calldata for any function of the SchoolFactory interface. Params are
given in declaration order: strings verbatim, addresses as hex, integers as
decimal or 0x-prefixed hex.

	schoolfactory encode createSchoolSystem "Springfield High" SPS`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := schoolfactory.Lookup(args[0])
		if err != nil {
			return err
		}
		if !entry.IsFunction() {
			return fmt.Errorf("%s is an event, only functions can be encoded", entry.Name)
		}
		method := schoolfactory.MustABI().Methods[entry.Name]
		params, err := cmdutil.ConvertArgs(method.Inputs, args[1:])
		if err != nil {
			return err
		}
		data, err := schoolfactory.MustABI().Pack(entry.Name, params...)
		if err != nil {
			return fmt.Errorf("couldn't pack %s: %w", entry.Signature(), err)
		}
		appUI.KeyValue([][2]string{
			{"Function", entry.Signature()},
			{"Selector", hexutil.Encode(entry.Selector())},
			{"Calldata", hexutil.Encode(data)},
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
