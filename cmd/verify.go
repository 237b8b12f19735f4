package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/ui"
)

// ErrDrift makes verify exit non-zero once the report is printed.
var ErrDrift = errors.New("the deployed factory doesn't match this build's interface")

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the deployed factory against the interface this tool was built with",
	Long: `Read the bytecode at the factory address and the verified ABI published by the
network's block explorer, then compare the ABI entry by entry with the
built-in interface: signatures, state mutability, outputs and indexed event
params. Explorer ABIs are cached, --refresh fetches them again.

The command exits non-zero when the address holds no code or an entry
differs. An explorer that can't serve the ABI is reported but is not drift.`,
	Args:    cobra.NoArgs,
	PreRunE: ReadPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := cmdContext(cmd)
		if err != nil {
			return err
		}
		report, err := cc.Factory.CheckDrift(config.ForceRefresh)
		if err != nil {
			return err
		}
		if config.JSONOutput {
			content, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(appUI.Writer(), string(content))
		} else {
			appUI.Section(fmt.Sprintf("Factory on %s", report.Network))
			explorer := yesNo(report.ExplorerABIAvailable)
			if report.ExplorerError != "" {
				explorer = fmt.Sprintf("no (%s)", report.ExplorerError)
			}
			appUI.KeyValue([][2]string{
				{"Address", report.Address},
				{"Has code", fmt.Sprintf("%s (%d bytes)", yesNo(report.HasCode), report.CodeSize)},
				{"Explorer ABI", explorer},
			})
			if len(report.Mismatches) > 0 {
				rows := [][]string{}
				for _, m := range report.Mismatches {
					rows = append(rows, []string{ui.Label(string(m.Kind)), m.Entry, orDash(m.Detail)})
				}
				appUI.Table([]string{"Mismatch", "Entry", "Detail"}, rows)
			}
		}

		switch {
		case report.HasDrift():
			return ErrDrift
		case !report.ExplorerABIAvailable:
			appUI.Warn("Code is deployed but the interface couldn't be compared without the explorer ABI.")
		default:
			appUI.Success("The deployed factory matches the interface.")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&config.ForceRefresh, "refresh", false, "ignore the cached explorer ABI")
	verifyCmd.Flags().BoolVar(&config.JSONOutput, "json", false, "print the report as json")
	rootCmd.AddCommand(verifyCmd)
}
