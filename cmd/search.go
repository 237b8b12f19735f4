package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/schoolfactory/config"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the school systems found by previous scans",
	Long: `Search the local index by name, symbol, address or owner. Exact phrases rank
first, a one letter typo still matches. Run "schoolfactory events" to fill the
index.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := backend.Index()
		if err != nil {
			return fmt.Errorf("couldn't open the local index: %w", err)
		}
		input := strings.Join(args, " ")
		hits, err := index.Search(input, config.SearchLimit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			appUI.Info("Nothing matches %q.", input)
			return nil
		}
		rows := [][]string{}
		for _, h := range hits {
			rows = append(rows, []string{
				h.Address.Hex(),
				orDash(h.Name),
				orDash(h.Symbol),
				h.Owner.Hex(),
				h.Network,
				fmt.Sprintf("%.3f", h.Score),
			})
		}
		appUI.Table([]string{"School system", "Name", "Symbol", "Owner", "Network", "Score"}, rows)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&config.SearchLimit, "limit", "l", 10, "max results")
	rootCmd.AddCommand(searchCmd)
}
