package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/ui"
	"github.com/tranvictor/schoolfactory/util/logger"
)

// indexSchools adds schools to the local search index. Failing to do so
// never fails the command that found them.
func indexSchools(network string, schools []sfcommon.SchoolSystem) {
	if config.NoIndex || len(schools) == 0 {
		return
	}
	index, err := backend.Index()
	if err == nil {
		err = index.Index(network, schools)
	}
	if err != nil {
		appUI.Warn("Couldn't update the local search index: %s", err)
		return
	}
	logger.L().Debugw("indexed school systems", "network", network, "count", len(schools))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Scan SchoolSystemDeployed events and index the school systems found",
	Long: `Page eth_getLogs over [--from, --to] in windows of --chunk blocks, decode every
SchoolSystemDeployed event of the factory and recover name and symbol from the
deploying transaction. Results are added to the local search index unless
--no-index is given, and written as a json report with --json-output.`,
	Args:    cobra.NoArgs,
	PreRunE: ReadPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := cmdContext(cmd)
		if err != nil {
			return err
		}
		to := uint64(config.ToBlock)
		if config.ToBlock < 0 {
			to, err = cc.Reader.CurrentBlock()
			if err != nil {
				return fmt.Errorf("couldn't get the current block: %w", err)
			}
		}

		stop := appUI.Spinner(fmt.Sprintf("scanning blocks %d-%d", config.FromBlock, to))
		report, err := cc.Factory.ScanDeployments(cmd.Context(), config.FromBlock, to, config.ChunkSize)
		stop()
		if err != nil {
			return err
		}

		appUI.Section(fmt.Sprintf("SchoolSystemDeployed on %s, blocks %d-%d", report.Network, report.FromBlock, report.ToBlock))
		if len(report.SchoolSystems) == 0 {
			appUI.Info("No school system deployed in this range.")
		} else {
			rows := [][]string{}
			for _, s := range report.SchoolSystems {
				rows = append(rows, []string{
					fmt.Sprintf("%d", s.BlockNumber),
					s.Address.Hex(),
					s.Owner.Hex(),
					orDash(s.Name),
					orDash(s.Symbol),
					ui.ShortHex(s.TxHash.Hex()),
				})
			}
			appUI.Table([]string{"Block", "School system", "Owner", "Name", "Symbol", "Tx"}, rows)
			appUI.Success("Found %d school systems.", len(report.SchoolSystems))
		}

		if config.JSONOutputFile != "" {
			content, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(config.JSONOutputFile, content, 0o644); err != nil {
				return fmt.Errorf("couldn't write %s: %w", config.JSONOutputFile, err)
			}
			appUI.Info("Report %s written to %s", report.RunID, config.JSONOutputFile)
		}
		indexSchools(report.Network, report.SchoolSystems)
		return nil
	},
}

func init() {
	eventsCmd.Flags().Uint64Var(&config.FromBlock, "from", 0, "first block to scan")
	eventsCmd.Flags().Int64Var(&config.ToBlock, "to", -1, "last block to scan, negative means the current block")
	eventsCmd.Flags().Uint64Var(&config.ChunkSize, "chunk", config.DefaultChunkSize, "blocks per eth_getLogs request")
	eventsCmd.Flags().StringVarP(&config.JSONOutputFile, "json-output", "o", "", "write the scan report to this json file")
	eventsCmd.Flags().BoolVar(&config.NoIndex, "no-index", false, "don't add the results to the local search index")
	rootCmd.AddCommand(eventsCmd)
}
